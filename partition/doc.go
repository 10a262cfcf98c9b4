// Package partition turns glyph outlines into renderable path meshes.
//
// A Partitioner takes the whole batch of outlines of a layout in one call
// and returns one Mesh holding a PathRange per outline, in input order.
// Path i of the mesh therefore renders outline i, and uses attribute row
// i+1 in the render view.
//
// Local is an in-process partitioner that emits stencil triangle fans per
// contour. Expand adds the padded cover quads drawn after the stencil pass.
package partition
