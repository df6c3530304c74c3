package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testExpiration = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func TestAlternativeService_ZeroValue(t *testing.T) {
	var s AlternativeService
	assert.Equal(t, ProtocolUnknown, s.Protocol)
	assert.Empty(t, s.Host)
	assert.Zero(t, s.Port)
}

func TestAlternativeService_String(t *testing.T) {
	assert.Equal(t, "h2 example.com:443", NewAlternativeService(ProtocolHTTP2, "example.com", 443).String())
	assert.Equal(t, "quic ::1:8443", NewAlternativeService(ProtocolQUIC, "::1", 8443).String())
	assert.Equal(t, "[::1]:8443", NewAlternativeService(ProtocolQUIC, "::1", 8443).HostPort())
	assert.Equal(t, "unknown :0", AlternativeService{}.String())
}

func TestAlternativeService_Ordering(t *testing.T) {
	h2a := NewAlternativeService(ProtocolHTTP2, "a.com", 443)
	h2b := NewAlternativeService(ProtocolHTTP2, "b.com", 80)
	h2a80 := NewAlternativeService(ProtocolHTTP2, "a.com", 80)
	quicA := NewAlternativeService(ProtocolQUIC, "a.com", 1)

	assert.True(t, h2a.Less(h2b), "host breaks the tie after protocol")
	assert.True(t, h2a80.Less(h2a), "port breaks the tie after host")
	assert.True(t, h2b.Less(quicA), "protocol dominates")
	assert.False(t, h2a.Less(h2a))
	assert.Zero(t, h2a.Compare(NewAlternativeService(ProtocolHTTP2, "a.com", 443)))
	assert.True(t, h2a.Equal(NewAlternativeService(ProtocolHTTP2, "a.com", 443)))
	assert.False(t, h2a.Equal(h2a80))
}

func TestInfo_SetAdvertisedVersions_IgnoredForNonQUIC(t *testing.T) {
	info := NewHTTP2Info(NewAlternativeService(ProtocolHTTP2, "example.com", 443), testExpiration)
	info.SetAdvertisedVersions([]QUICVersion{QUICVersionQ046})
	assert.Empty(t, info.AdvertisedVersions())
}

func TestInfo_VersionsAlwaysSorted(t *testing.T) {
	in := []QUICVersion{QUICVersionRFCv2, QUICVersionQ046, QUICVersionRFCv1}
	want := []QUICVersion{QUICVersionQ046, QUICVersionRFCv1, QUICVersionRFCv2}

	info := NewQUICInfo(NewAlternativeService(ProtocolQUIC, "example.com", 443), testExpiration, in)
	assert.Equal(t, want, info.AdvertisedVersions())
	assert.Equal(t, []QUICVersion{QUICVersionRFCv2, QUICVersionQ046, QUICVersionRFCv1}, in, "input not mutated")

	var viaSetter AlternativeServiceInfo
	viaSetter.SetProtocol(ProtocolQUIC)
	viaSetter.SetAdvertisedVersions(in)
	assert.Equal(t, want, viaSetter.AdvertisedVersions())
}

func TestInfo_AccessorsReturnCopies(t *testing.T) {
	info := NewQUICInfo(NewAlternativeService(ProtocolQUIC, "example.com", 443), testExpiration,
		[]QUICVersion{QUICVersionRFCv1})
	got := info.AdvertisedVersions()
	got[0] = QUICVersionQ043
	assert.Equal(t, []QUICVersion{QUICVersionRFCv1}, info.AdvertisedVersions())
}

func TestInfo_SwitchingAwayFromQUICClearsVersions(t *testing.T) {
	info := NewQUICInfo(NewAlternativeService(ProtocolQUIC, "example.com", 443), testExpiration,
		[]QUICVersion{QUICVersionRFCv1})
	info.SetProtocol(ProtocolHTTP2)
	assert.Empty(t, info.AdvertisedVersions())
}

func TestInfo_Equal(t *testing.T) {
	svc := NewAlternativeService(ProtocolQUIC, "example.com", 443)
	base := NewQUICInfo(svc, testExpiration, []QUICVersion{QUICVersionRFCv1})

	same := NewQUICInfo(svc, testExpiration.In(time.FixedZone("X", 3600)), []QUICVersion{QUICVersionRFCv1})
	assert.True(t, base.Equal(same))

	laterExp := NewQUICInfo(svc, testExpiration.Add(time.Second), []QUICVersion{QUICVersionRFCv1})
	assert.False(t, base.Equal(laterExp), "different expiration is a different value")

	otherVersions := NewQUICInfo(svc, testExpiration, []QUICVersion{QUICVersionRFCv2})
	assert.False(t, base.Equal(otherVersions))

	otherHost := base
	otherHost.SetHost("other.com")
	assert.False(t, base.Equal(otherHost))

	override := base
	override.SetProtocolFilterOverride(true)
	assert.False(t, base.Equal(override))
	assert.False(t, base.ProtocolFilterOverride())
}

func TestInfo_String(t *testing.T) {
	h2 := NewHTTP2Info(NewAlternativeService(ProtocolHTTP2, "example.com", 443), testExpiration)
	assert.Equal(t, "h2 example.com:443, expires 2026-10-16T12:00:00Z", h2.String())

	q := NewQUICInfo(NewAlternativeService(ProtocolQUIC, "example.com", 443), testExpiration,
		[]QUICVersion{QUICVersionRFCv2, QUICVersionRFCv1})
	assert.Equal(t, "quic example.com:443, expires 2026-10-16T12:00:00Z, versions { RFCv1 RFCv2 }", q.String())
}

func TestInfo_IsExpired(t *testing.T) {
	info := NewHTTP2Info(NewAlternativeService(ProtocolHTTP2, "example.com", 443), testExpiration)
	assert.False(t, info.IsExpired(testExpiration.Add(-time.Nanosecond)))
	assert.True(t, info.IsExpired(testExpiration))
	assert.True(t, info.IsExpired(testExpiration.Add(time.Hour)))
}

func TestVector_EqualAndUnexpired(t *testing.T) {
	a := NewHTTP2Info(NewAlternativeService(ProtocolHTTP2, "a.com", 443), testExpiration)
	b := NewHTTP2Info(NewAlternativeService(ProtocolHTTP2, "b.com", 443), testExpiration.Add(time.Hour))

	v := AlternativeServiceInfoVector{a, b}
	assert.True(t, v.Equal(AlternativeServiceInfoVector{a, b}))
	assert.False(t, v.Equal(AlternativeServiceInfoVector{b, a}), "order is meaningful")

	live := v.Unexpired(testExpiration)
	assert.True(t, live.Equal(AlternativeServiceInfoVector{b}))
	assert.Len(t, v.Strings(), 2)
}
