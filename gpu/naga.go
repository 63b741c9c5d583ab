// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
)

// ValidateWGSL compiles the given WGSL code to SPIR-V with naga,
// returning any parse or validation error. The output is discarded:
// the device compiles WGSL itself.
func ValidateWGSL(name, code string) error {
	if _, err := compileWGSL(code); err != nil {
		return fmt.Errorf("gpu: shader %q: %w", name, err)
	}
	return nil
}

func compileWGSL(code string) ([]byte, error) {
	return naga.Compile(code)
}
