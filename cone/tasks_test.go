package cone

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyImplicationsCascade(t *testing.T) {
	tf := TaskFlags{ComputeStanleyDecomp: true}
	tf.applyImplications()
	require.True(t, tf.KeepTriangulation)
	require.True(t, tf.ComputeTriangulation)
}

func TestApplyImplicationsHilbertSeries(t *testing.T) {
	tf := TaskFlags{ComputeHilbertSeries: true}
	tf.applyImplications()
	require.True(t, tf.ComputeTriangulation)
	require.True(t, tf.ComputeHilbertBasis)
}

func TestModeFlagsSupportHyperplanes(t *testing.T) {
	tf := ModeSupportHyperplanes.Flags()
	require.False(t, tf.ComputeTriangulation)
}

func TestModeFlagsHilbertBasisMultiplicity(t *testing.T) {
	tf := ModeHilbertBasisMultiplicity.Flags()
	require.True(t, tf.ComputeHilbertBasis)
	require.True(t, tf.ComputeMultiplicity)
	require.True(t, tf.ComputeTriangulation)
}
