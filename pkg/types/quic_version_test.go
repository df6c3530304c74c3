package types

import (
	"math/rand"
	"testing"

	"github.com/quic-go/quic-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQUICVersion_String(t *testing.T) {
	assert.Equal(t, "Q043", QUICVersionQ043.String())
	assert.Equal(t, "Q046", QUICVersionQ046.String())
	assert.Equal(t, "draft29", QUICVersionDraft29.String())
	assert.Equal(t, "RFCv1", QUICVersionRFCv1.String())
	assert.Equal(t, "RFCv2", QUICVersionRFCv2.String())
	assert.Equal(t, "0x00001234", QUICVersion(0x1234).String())
}

func TestQUICVersion_MatchesQUICGo(t *testing.T) {
	assert.Equal(t, uint32(quic.Version1), uint32(QUICVersionRFCv1))
	assert.Equal(t, uint32(quic.Version2), uint32(QUICVersionRFCv2))
}

func TestCompareQUICVersions(t *testing.T) {
	assert.Negative(t, CompareQUICVersions(QUICVersionQ043, QUICVersionQ046))
	assert.Negative(t, CompareQUICVersions(QUICVersionQ050, QUICVersionDraft29))
	assert.Negative(t, CompareQUICVersions(QUICVersionRFCv1, QUICVersionRFCv2))
	assert.Positive(t, CompareQUICVersions(QUICVersion(0x1), QUICVersionQ043), "unknown sorts after known")
	assert.Negative(t, CompareQUICVersions(QUICVersion(0x2), QUICVersion(0x3)))
	assert.Zero(t, CompareQUICVersions(QUICVersionQ046, QUICVersionQ046))
}

func TestSortQUICVersions_Deterministic(t *testing.T) {
	want := []QUICVersion{
		QUICVersionQ043, QUICVersionQ046, QUICVersionQ050,
		QUICVersionDraft29, QUICVersionRFCv1, QUICVersionRFCv2,
		QUICVersion(0x0a0a0a0a), QUICVersion(0x1a2a3a4a),
	}

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		got := append([]QUICVersion(nil), want...)
		r.Shuffle(len(got), func(a, b int) { got[a], got[b] = got[b], got[a] })
		SortQUICVersions(got)
		require.Equal(t, want, got)
	}
}

func TestParseQUICVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    QUICVersion
		wantErr bool
	}{
		{"Q046", QUICVersionQ046, false},
		{"q043", QUICVersionQ043, false},
		{"RFCv1", QUICVersionRFCv1, false},
		{"h3", QUICVersionRFCv1, false},
		{"h3-29", QUICVersionDraft29, false},
		{"0x00001234", QUICVersion(0x1234), false},
		{"0x0", QUICVersionUnsupported, true},
		{"bogus", QUICVersionUnsupported, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQUICVersion(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownQUICVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQUICVersion_ALPN(t *testing.T) {
	assert.Equal(t, "h3", QUICVersionRFCv1.ALPN())
	assert.Equal(t, "h3-Q050", QUICVersionQ050.ALPN())
	assert.Empty(t, QUICVersionRFCv2.ALPN())
	assert.Empty(t, QUICVersion(7).ALPN())
}

func TestQUICVersionFromALPN_CaseInsensitive(t *testing.T) {
	v, ok := QUICVersionFromALPN("H3-Q046")
	assert.True(t, ok)
	assert.Equal(t, QUICVersionQ046, v)

	v, ok = QUICVersionFromALPN("h3-q043")
	assert.True(t, ok)
	assert.Equal(t, QUICVersionQ043, v)

	_, ok = QUICVersionFromALPN("h3-q999")
	assert.False(t, ok)
}
