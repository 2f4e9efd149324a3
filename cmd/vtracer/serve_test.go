package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/opd-ai/vtracer"
)

// uploadRequest builds a multipart POST /convert with img in the "image"
// field and fields as form values.
func uploadRequest(t *testing.T, img []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if img != nil {
		fw, err := mw.CreateFormFile("image", "upload.png")
		require.NoError(t, err)
		_, err = fw.Write(img)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func encodePNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvertHandler(t *testing.T) {
	red := encodePNG(t, color.NRGBA{R: 255, A: 255})

	tests := []struct {
		name     string
		img      []byte
		fields   map[string]string
		status   int
		contains string
	}{
		{"default config", red, nil, http.StatusOK, `fill="#FF0000"`},
		{"polygon mode", red, map[string]string{"mode": "polygon"}, http.StatusOK, `d="M0 0 L2 0 L2 2 L0 2 Z"`},
		{"binary preset", red, map[string]string{"preset": "bw", "filter_speckle": "0"}, http.StatusOK, `fill="#000000"`},
		{"missing image", nil, nil, http.StatusBadRequest, "missing image field"},
		{"not an image", []byte("plain text"), nil, http.StatusBadRequest, "unsupported image"},
		{"unknown mode", red, map[string]string{"mode": "bezier"}, http.StatusBadRequest, "mode"},
		{"unknown preset", red, map[string]string{"preset": "sketch"}, http.StatusBadRequest, "sketch"},
		{"bad number", red, map[string]string{"filter_speckle": "four"}, http.StatusBadRequest, "filter_speckle"},
	}
	h := newRouter(vtracer.DefaultConfig(), maxUploadBytes)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, uploadRequest(t, tt.img, tt.fields))

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.contains)
			if tt.status == http.StatusOK {
				assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestConvertHandlerRejectsLargeUpload(t *testing.T) {
	h := newRouter(vtracer.DefaultConfig(), 64)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, bytes.Repeat([]byte{0}, 4096), nil))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestConvertHandlerNotMultipart(t *testing.T) {
	h := newRouter(vtracer.DefaultConfig(), maxUploadBytes)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/convert", bytes.NewReader([]byte("x"))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/convert", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeListenerShutsDown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveListener(ctx, ln, vtracer.DefaultConfig()) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	var body []byte
	require.Eventually(t, func() bool {
		resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ = io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "ok\n", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serveListener did not stop")
	}
}
