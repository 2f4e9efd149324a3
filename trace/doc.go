// Package trace turns pixel regions into closed vector outlines.
//
// # Outlines
//
// Outlines walks the pixel-edge boundary of a Region and returns closed
// lattice loops. Outer boundaries run clockwise on screen and holes run
// counter-clockwise, so Loop.Area is positive for shapes and negative for
// holes. Pixels that touch only at a corner are kept as separate loops.
//
// # Simplification
//
// Trace converts a loop into a curve.BezPath according to Options.Mode:
//
//   - ModeNone emits every unit step of the staircase.
//   - ModePolygon drops collinear lattice points.
//   - ModeSpline replaces staircases by the polyline through their edge
//     midpoints (keeping vertices between edges at least LengthThreshold
//     long), smooths edges longer than LengthThreshold with up to
//     MaxIterations rounds of four-point subdivision, and breaks the
//     outline at turns sharper than CornerThreshold (sharp) or
//     SpliceThreshold (smooth). Each run between breaks becomes a chain of
//     cubics that curve.Simplify reduces to a few Bezier segments.
//
// # Rendering
//
// Trace returns a curve.BezPath. AppendSVG writes it as SVG path data
// ("M x y L x y C ... Z") with a configurable number of decimal digits.
package trace
