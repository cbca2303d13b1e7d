//go:build animdebug

package model

import "testing"

func TestMisusePanicsInDebugBuilds(t *testing.T) {
	tests := []struct {
		name string
		call func(*Model)
	}{
		{"IncrementAnimationTime", func(m *Model) { m.IncrementAnimationTime(1) }},
		{"SetFrame", func(m *Model) { m.SetFrame(3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mdl := newModel(t, armMesh(t), swing(t))
			defer func() {
				if recover() == nil {
					t.Errorf("%s while stopped did not panic", tt.name)
				}
			}()
			tt.call(mdl)
		})
	}
}
