package cpu

import (
	"testing"
)

// BenchmarkCPU_Mult measures the Step loop on the multiplication program.
func BenchmarkCPU_Mult(b *testing.B) {
	c := NewCPU()
	loadProgram(b, c, multProgram)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Reset()
		c.RAM[0], c.RAM[1] = 200, 3
		c.Run(0)
	}
}

// BenchmarkCPU_Rect measures a screen-heavy program plus a framebuffer decode.
func BenchmarkCPU_Rect(b *testing.B) {
	c := NewCPU()
	loadProgram(b, c, rectProgram)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Reset()
		c.RAM[0] = 256
		c.Run(0)
		_ = c.GetFramebufferRGBA()
	}
}
