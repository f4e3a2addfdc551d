package devicetest

import (
	"unsafe"

	"github.com/lanyuliuyun/ray-trace/scene"
	"github.com/lanyuliuyun/ray-trace/tracer"
)

// Register host implementations of the render_gradient and
// render_project_depth kernels. They follow the argument layout and the
// bounds guards of the bundled program so frames rendered through the fake
// driver can be compared against the scalar backend.
func (drv *Driver) AddRenderKernels() {
	drv.Kernels["render_gradient"] = func(args []interface{}, x, y int) {
		img := args[0].(*Mem)
		if x >= img.Width || y >= img.Height {
			return
		}
		c := tracer.GradientColor(x, y, img.Width, img.Height)
		img.WriteTexel(x, y, c.B, c.G, c.R, c.A)
	}

	drv.Kernels["render_project_depth"] = func(args []interface{}, x, y int) {
		camera := (*scene.CameraData)(unsafe.Pointer(&args[0].(*Mem).Data[0])).Camera()
		sphere := (*scene.SphereData)(unsafe.Pointer(&args[1].(*Mem).Data[0])).Sphere()
		img := args[2].(*Mem)
		if x >= img.Width || y >= img.Height {
			return
		}

		c := tracer.CheckerColor(x, y)
		ray := camera.GenerateRay(scene.Point{float32(x), float32(img.Height - y), 0})
		if ray.Valid() {
			if res := sphere.Intersect(ray); res.Hit {
				v := tracer.DepthShade(res.Distance)
				c = tracer.PixelColor{B: v, G: v, R: v, A: 255}
			}
		}
		img.WriteTexel(x, y, c.B, c.G, c.R, c.A)
	}
}
