package advert

import (
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-altsvc/pkg/types"
)

var testNow = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

func scenarioEntries() []types.AltSvcEntry {
	return []types.AltSvcEntry{
		{ProtocolID: "h2", Host: "example.com", Port: 443, MaxAge: 3600 * time.Second},
		{
			ProtocolID: "quic", Host: "example.com", Port: 443, MaxAge: 3600 * time.Second,
			Versions: []types.QUICVersion{types.QUICVersionQ043, types.QUICVersionQ046},
		},
	}
}

// TestProcess_ScenarioA 两个条目都被采纳，QUIC 只保留共同版本
func TestProcess_ScenarioA(t *testing.T) {
	got := Process(scenarioEntries(), true, true, []types.QUICVersion{types.QUICVersionQ046}, testNow)

	exp := testNow.Add(3600 * time.Second)
	want := types.AlternativeServiceInfoVector{
		types.NewHTTP2Info(types.NewAlternativeService(types.ProtocolHTTP2, "example.com", 443), exp),
		types.NewQUICInfo(types.NewAlternativeService(types.ProtocolQUIC, "example.com", 443), exp,
			[]types.QUICVersion{types.QUICVersionQ046}),
	}
	assert.True(t, want.Equal(got), "got %v", got.Strings())
}

// TestProcess_ScenarioB 关闭 QUIC
func TestProcess_ScenarioB(t *testing.T) {
	got := Process(scenarioEntries(), true, false, []types.QUICVersion{types.QUICVersionQ046}, testNow)

	want := types.AlternativeServiceInfoVector{
		types.NewHTTP2Info(types.NewAlternativeService(types.ProtocolHTTP2, "example.com", 443), testNow.Add(time.Hour)),
	}
	assert.True(t, want.Equal(got), "got %v", got.Strings())
}

// TestProcess_ScenarioC 版本交集为空时丢弃
func TestProcess_ScenarioC(t *testing.T) {
	entries := []types.AltSvcEntry{{
		ProtocolID: "quic", Host: "a.com", Port: 443, MaxAge: 60 * time.Second,
		Versions: []types.QUICVersion{types.QUICVersionQ043},
	}}
	got := Process(entries, true, true, []types.QUICVersion{types.QUICVersionQ046}, testNow)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

// TestProcess_ScenarioD 空输入
func TestProcess_ScenarioD(t *testing.T) {
	assert.Empty(t, Process(nil, true, true, []types.QUICVersion{types.QUICVersionQ046}, testNow))
	assert.Empty(t, Process([]types.AltSvcEntry{}, true, true, nil, testNow))
}

func TestProcess_DropsUnknownAndInvalid(t *testing.T) {
	entries := []types.AltSvcEntry{
		{ProtocolID: "spdy/3", Host: "a.com", Port: 1, MaxAge: time.Hour},
		{ProtocolID: "", Host: "b.com", Port: 2, MaxAge: time.Hour},
		{ProtocolID: "http/1.1", Host: "c.com", Port: 3, MaxAge: time.Hour},
	}
	got := Process(entries, false, false, nil, testNow)
	require.Len(t, got, 1)
	assert.Equal(t, types.ProtocolHTTP11, got[0].Protocol(), "protocols without a switch pass")
	assert.Equal(t, "c.com", got[0].AlternativeService().Host)
}

func TestProcess_ALPNTokenSuppliesVersion(t *testing.T) {
	entries := []types.AltSvcEntry{
		{ProtocolID: "h3", Host: "", Port: 443, MaxAge: time.Hour},
		{ProtocolID: "h3-29", Host: "", Port: 443, MaxAge: time.Hour},
		{ProtocolID: "h3-Q050", Host: "", Port: 443, MaxAge: time.Hour,
			Versions: []types.QUICVersion{types.QUICVersionRFCv2}},
	}
	supported := []types.QUICVersion{types.QUICVersionRFCv1, types.QUICVersionRFCv2}

	got := Process(entries, true, true, supported, testNow)
	require.Len(t, got, 2, "draft29 is not supported")
	assert.Equal(t, []types.QUICVersion{types.QUICVersionRFCv1}, got[0].AdvertisedVersions())
	assert.Equal(t, []types.QUICVersion{types.QUICVersionRFCv2}, got[1].AdvertisedVersions(),
		"explicit version list wins over the ALPN version")
}

func TestProcess_VersionsSortedAndDeduplicated(t *testing.T) {
	entries := []types.AltSvcEntry{{
		ProtocolID: "quic", Host: "a.com", Port: 443, MaxAge: time.Hour,
		Versions: []types.QUICVersion{
			types.QUICVersionRFCv2, types.QUICVersionQ050, types.QUICVersionRFCv2, types.QUICVersionRFCv1,
		},
	}}
	supported := []types.QUICVersion{types.QUICVersionRFCv1, types.QUICVersionRFCv2, types.QUICVersionQ050}

	got := Process(entries, true, true, supported, testNow)
	require.Len(t, got, 1)
	assert.Equal(t,
		[]types.QUICVersion{types.QUICVersionQ050, types.QUICVersionRFCv1, types.QUICVersionRFCv2},
		got[0].AdvertisedVersions())
}

func TestProcess_ExpirationCapped(t *testing.T) {
	entries := []types.AltSvcEntry{
		{ProtocolID: "h2", Host: "a.com", Port: 443, MaxAge: 10 * 365 * 24 * time.Hour},
		{ProtocolID: "h2", Host: "b.com", Port: 443, MaxAge: -time.Hour},
	}

	got := ProcessWithPolicy(entries, Policy{HTTP2Enabled: true, MaxLifetime: 24 * time.Hour}, testNow)
	require.Len(t, got, 2)
	assert.Equal(t, testNow.Add(24*time.Hour), got[0].Expiration())
	assert.Equal(t, testNow, got[1].Expiration())
}

func TestProcess_NonQUICNeverCarriesVersions(t *testing.T) {
	entries := []types.AltSvcEntry{{
		ProtocolID: "h2", Host: "a.com", Port: 443, MaxAge: time.Hour,
		Versions: []types.QUICVersion{types.QUICVersionRFCv1},
	}}
	got := Process(entries, true, true, []types.QUICVersion{types.QUICVersionRFCv1}, testNow)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].AdvertisedVersions())
}

func TestProcess_DoesNotMutateInput(t *testing.T) {
	entries := scenarioEntries()
	entries[1].Versions = []types.QUICVersion{types.QUICVersionQ046, types.QUICVersionQ043}
	supported := []types.QUICVersion{types.QUICVersionQ046, types.QUICVersionQ043}

	Process(entries, true, true, supported, testNow)

	assert.Equal(t, []types.QUICVersion{types.QUICVersionQ046, types.QUICVersionQ043}, entries[1].Versions)
	assert.Equal(t, []types.QUICVersion{types.QUICVersionQ046, types.QUICVersionQ043}, supported)
}

// ============================================================================
//                              性质测试
// ============================================================================

var (
	tokenPool   = []string{"h2", "quic", "http/1.1", "h3", "h3-29", "h3-Q046", "bogus", ""}
	versionPool = []types.QUICVersion{
		types.QUICVersionQ043, types.QUICVersionQ046, types.QUICVersionQ050,
		types.QUICVersionDraft29, types.QUICVersionRFCv1, types.QUICVersionRFCv2, types.QUICVersion(0x0a1a2a3a),
	}
)

func randomVersions(r *rand.Rand) []types.QUICVersion {
	n := r.Intn(4)
	out := make([]types.QUICVersion, n)
	for i := range out {
		out[i] = versionPool[r.Intn(len(versionPool))]
	}
	return out
}

func randomEntries(r *rand.Rand) []types.AltSvcEntry {
	n := r.Intn(8)
	out := make([]types.AltSvcEntry, n)
	for i := range out {
		out[i] = types.AltSvcEntry{
			ProtocolID: tokenPool[r.Intn(len(tokenPool))],
			Host:       "h" + string(rune('a'+i)) + ".com",
			Port:       uint16(i),
			MaxAge:     time.Duration(r.Intn(7200)) * time.Second,
			Versions:   randomVersions(r),
		}
	}
	return out
}

func TestProcess_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for iter := 0; iter < 500; iter++ {
		entries := randomEntries(r)
		supported := randomVersions(r)
		h2, q := r.Intn(2) == 0, r.Intn(2) == 0

		got := Process(entries, h2, q, supported, testNow)

		require.LessOrEqual(t, len(got), len(entries))

		// 输出顺序与输入顺序一致（每个条目的端口即输入下标）
		lastIndex := -1
		for _, info := range got {
			svc := info.AlternativeService()
			require.NotEqual(t, types.ProtocolUnknown, svc.Protocol)
			require.Greater(t, int(svc.Port), lastIndex)
			lastIndex = int(svc.Port)

			if !h2 {
				require.NotEqual(t, types.ProtocolHTTP2, svc.Protocol)
			}
			if !q {
				require.NotEqual(t, types.ProtocolQUIC, svc.Protocol)
			}

			versions := info.AdvertisedVersions()
			if svc.Protocol != types.ProtocolQUIC {
				require.Empty(t, versions)
				continue
			}
			require.NotEmpty(t, versions)
			require.True(t, slices.IsSortedFunc(versions, types.CompareQUICVersions))
			for _, v := range versions {
				require.Contains(t, supported, v)
			}
		}

		// 关闭一个协议不影响其他协议的结果
		if h2 && q {
			noQUIC := Process(entries, true, false, supported, testNow)
			var want types.AlternativeServiceInfoVector
			for _, info := range got {
				if info.Protocol() != types.ProtocolQUIC {
					want = append(want, info)
				}
			}
			require.True(t, types.AlternativeServiceInfoVector(want).Equal(noQUIC))
		}
	}
}
