// Package cluster groups the pixels of an RGBA raster into connected
// regions of similar color, the first stage of vectorization.
//
// Pixels are keyed by their color reduced to ColorPrecision significant bits
// per channel and flood-filled into 4-connected components. Components
// smaller than FilterSpeckle² pixels, and components whose average color is
// within LayerDifference of a neighbor, are then folded into their closest
// neighbor, smallest first. A component with no neighbor is always kept, so
// a single-color image yields exactly one cluster.
//
// In binary mode only pixels darker than mid-grey are keyed, no merging
// happens and speckles are dropped instead.
//
// Pixels with alpha below 128 belong to no cluster.
//
//	clusters := cluster.Build(pixels, width, height, cluster.Options{
//	    ColorPrecision:  6,
//	    LayerDifference: 16,
//	    FilterSpeckle:   4,
//	})
//	for _, c := range clusters {
//	    fmt.Println(c.Color, c.Area, c.Mask.Bounds())
//	}
package cluster
