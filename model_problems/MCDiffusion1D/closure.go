package MCDiffusion1D

// CloseDependent sets the last species of every cell to one minus the sum of the others
func CloseDependent(f Field) {
	var (
		ns, nc = f.Dims()
		data   = f.Data()
		last   = ns - 1
	)
	for i := 0; i < nc; i++ {
		var sum float64
		for s := 0; s < last; s++ {
			sum += data[s*nc+i]
		}
		data[last*nc+i] = 1. - sum
	}
}
