package primitive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/gemforge/pkg/fault"
	"github.com/chazu/gemforge/pkg/geom"
	"github.com/chazu/gemforge/pkg/kernel"
)

func TestBuildPlacesOrigin(t *testing.T) {
	loc := geom.Vec3{0.001, 0.002, -0.003}
	p, err := Build("ClusterStone_0", kernel.Icosphere{Subdivisions: 3, Radius: 0.0012}, loc)
	require.NoError(t, err)

	assert.Equal(t, "ClusterStone_0", p.Name)
	assert.Equal(t, loc, p.Transform.Position)
	assert.Equal(t, geom.One, p.Transform.Scale)
	assert.True(t, p.Transform.Rotation.IsZero())
	assert.False(t, p.Baked)
	assert.Nil(t, p.Mesh)
}

func TestBuildRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name  string
		shape kernel.Shape
	}{
		{"negative radius", kernel.Icosphere{Subdivisions: 2, Radius: -0.001}},
		{"zero subdivisions", kernel.Icosphere{Subdivisions: 0, Radius: 1}},
		{"torus minor too big", kernel.Torus{MajorRadius: 0.001, MinorRadius: 0.002, MajorSegments: 48, MinorSegments: 12}},
		{"cylinder depth", kernel.Cylinder{Radius: 0.001, Depth: -1, Vertices: 32}},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build("Bad", tt.shape, geom.Vec3{})
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, fault.ErrInvalidParameter))

			var ge *fault.GeometryError
			require.True(t, errors.As(err, &ge))
			assert.Equal(t, "Bad", ge.Part)
		})
	}
}

func TestBuildBoxScales(t *testing.T) {
	dims := geom.Vec3{0.008, 0.003, 0.012}
	p, err := BuildBox("MainStone", dims, geom.Vec3{})
	require.NoError(t, err)
	assert.Equal(t, dims, p.Transform.Scale)
	assert.Equal(t, kernel.KindBox, p.Shape.Kind())

	_, err = BuildBox("Flat", geom.Vec3{1, 0, 1}, geom.Vec3{})
	assert.ErrorIs(t, err, fault.ErrInvalidParameter)
}

func TestApplyModifierQueuesInOrder(t *testing.T) {
	p, err := BuildBox("MainStone", geom.Vec3{0.008, 0.003, 0.012}, geom.Vec3{})
	require.NoError(t, err)

	require.NoError(t, ApplyModifier(p, kernel.StoneCutBevel(0.003)))
	require.NoError(t, ApplyModifier(p, kernel.SmoothSubdivision()))

	require.Len(t, p.Modifiers, 2)
	assert.Equal(t, kernel.ModBevel, p.Modifiers[0].ModifierKind())
	assert.Equal(t, kernel.ModSubdivision, p.Modifiers[1].ModifierKind())
}

func TestApplyModifierRejects(t *testing.T) {
	p, err := BuildBox("Plate", geom.Vec3{0.01, 0.0005, 0.02}, geom.Vec3{})
	require.NoError(t, err)

	err = ApplyModifier(p, kernel.Bevel{Width: 0, Segments: 3})
	assert.ErrorIs(t, err, fault.ErrInvalidParameter)
	assert.Empty(t, p.Modifiers)

	p.Baked = true
	err = ApplyModifier(p, kernel.PlateBevel(0.0005))
	assert.ErrorIs(t, err, fault.ErrUnsupported)
}
