package advert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-altsvc/config"
	"github.com/dep2p/go-altsvc/pkg/types"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		protocol types.Protocol
		want     bool
	}{
		{types.ProtocolUnknown, false},
		{types.ProtocolHTTP11, true},
		{types.ProtocolHTTP2, true},
		{types.ProtocolQUIC, true},
		{types.Protocol(99), false},
	}

	for _, tt := range tests {
		t.Run(tt.protocol.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.protocol))
		})
	}
}

func TestIsEnabled(t *testing.T) {
	for _, h2 := range []bool{true, false} {
		for _, q := range []bool{true, false} {
			assert.Equal(t, h2, IsEnabled(types.ProtocolHTTP2, h2, q))
			assert.Equal(t, q, IsEnabled(types.ProtocolQUIC, h2, q))
			// 没有独立开关的协议默认放行
			assert.True(t, IsEnabled(types.ProtocolHTTP11, h2, q))
			assert.True(t, IsEnabled(types.ProtocolUnknown, h2, q))
		}
	}
}

func TestPolicyFromConfig(t *testing.T) {
	cfg := config.DefaultAltSvcConfig()
	cfg.EnableHTTP2 = false
	cfg.SupportedQUICVersions = []string{"Q046", "RFCv1"}
	cfg.MaxLifetime = config.Duration(time.Hour)

	p, err := PolicyFromConfig(cfg)
	require.NoError(t, err)
	assert.False(t, p.HTTP2Enabled)
	assert.True(t, p.QUICEnabled)
	assert.Equal(t, []types.QUICVersion{types.QUICVersionQ046, types.QUICVersionRFCv1}, p.SupportedQUICVersions)
	assert.Equal(t, time.Hour, p.MaxLifetime)

	cfg.SupportedQUICVersions = []string{"nope"}
	_, err = PolicyFromConfig(cfg)
	assert.ErrorIs(t, err, types.ErrUnknownQUICVersion)
}

func TestPolicy_Lifetime(t *testing.T) {
	p := Policy{MaxLifetime: time.Hour}
	assert.Equal(t, 30*time.Minute, p.lifetime(30*time.Minute))
	assert.Equal(t, time.Hour, p.lifetime(48*time.Hour))
	assert.Equal(t, time.Duration(0), p.lifetime(-time.Second))

	assert.Equal(t, config.DefaultMaxLifetime, Policy{}.lifetime(365*24*time.Hour))
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.True(t, p.HTTP2Enabled)
	assert.True(t, p.QUICEnabled)
	assert.Equal(t, []types.QUICVersion{types.QUICVersionRFCv1, types.QUICVersionRFCv2}, p.SupportedQUICVersions)
}
