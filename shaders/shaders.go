package shaders

import (
	_ "embed"
)

//go:embed slice.wgsl
var SliceWGSL string

//go:embed raster.wgsl
var RasterWGSL string
