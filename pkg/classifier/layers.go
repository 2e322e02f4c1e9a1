// ABOUTME: Layer kernels for a single example
// ABOUTME: im2col convolution, max pooling and their backward passes on gonum matrices
package classifier

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// im2col lays out every k x k patch of a CHW input as a column. Row
// (ch*k+ky)*k+kx matches the weight layout of a conv filter.
func im2col(x []float64, c, h, w, k int) *mat.Dense {
	oh, ow := h-k+1, w-k+1
	cols := oh * ow
	data := make([]float64, c*k*k*cols)
	for ch := 0; ch < c; ch++ {
		plane := x[ch*h*w : (ch+1)*h*w]
		for ky := 0; ky < k; ky++ {
			for kx := 0; kx < k; kx++ {
				row := (ch*k+ky)*k + kx
				dst := data[row*cols : (row+1)*cols]
				for y := 0; y < oh; y++ {
					src := plane[(y+ky)*w+kx:]
					copy(dst[y*ow:(y+1)*ow], src[:ow])
				}
			}
		}
	}
	return mat.NewDense(c*k*k, cols, data)
}

// col2im scatters column gradients back onto the input layout
func col2im(dcol *mat.Dense, c, h, w, k int) []float64 {
	oh, ow := h-k+1, w-k+1
	cols := oh * ow
	raw := dcol.RawMatrix()
	dx := make([]float64, c*h*w)
	for ch := 0; ch < c; ch++ {
		plane := dx[ch*h*w : (ch+1)*h*w]
		for ky := 0; ky < k; ky++ {
			for kx := 0; kx < k; kx++ {
				row := (ch*k+ky)*k + kx
				src := raw.Data[row*raw.Stride : row*raw.Stride+cols]
				for y := 0; y < oh; y++ {
					dst := plane[(y+ky)*w+kx:]
					for x := 0; x < ow; x++ {
						dst[x] += src[y*ow+x]
					}
				}
			}
		}
	}
	return dx
}

// conv computes ReLU(W*col + b) and returns the activations in CHW order
func conv(weights *mat.Dense, bias []float64, col *mat.Dense) []float64 {
	var z mat.Dense
	z.Mul(weights, col)
	r, c := z.Dims()
	raw := z.RawMatrix()
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+c]
		for j, v := range row {
			v += bias[i]
			if v < 0 {
				v = 0
			}
			out[i*c+j] = v
		}
	}
	return out
}

// maxPool downsamples each channel by p, dropping trailing rows and columns.
// argmax records the input index that produced each output.
func maxPool(in []float64, c, h, w, p int) (out []float64, argmax []int) {
	oh, ow := h/p, w/p
	out = make([]float64, c*oh*ow)
	argmax = make([]int, c*oh*ow)
	for ch := 0; ch < c; ch++ {
		for y := 0; y < oh; y++ {
			for x := 0; x < ow; x++ {
				best := math.Inf(-1)
				bestIdx := 0
				for dy := 0; dy < p; dy++ {
					for dx := 0; dx < p; dx++ {
						idx := ch*h*w + (y*p+dy)*w + x*p + dx
						if in[idx] > best {
							best, bestIdx = in[idx], idx
						}
					}
				}
				o := (ch*oh+y)*ow + x
				out[o] = best
				argmax[o] = bestIdx
			}
		}
	}
	return out, argmax
}

// unpool routes pooled gradients back to the argmax positions
func unpool(dout []float64, argmax []int, size int) []float64 {
	dx := make([]float64, size)
	for i, g := range dout {
		dx[argmax[i]] += g
	}
	return dx
}

func relu(v []float64) {
	for i, x := range v {
		if x < 0 {
			v[i] = 0
		}
	}
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func softmax(z []float64) []float64 {
	maxZ := math.Inf(-1)
	for _, v := range z {
		maxZ = math.Max(maxZ, v)
	}
	out := make([]float64, len(z))
	var sum float64
	for i, v := range z {
		out[i] = math.Exp(v - maxZ)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
