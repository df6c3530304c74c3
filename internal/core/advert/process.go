package advert

import (
	"time"

	"github.com/dep2p/go-altsvc/internal/core/metrics"
	"github.com/dep2p/go-altsvc/pkg/types"
)

// Process 按给定开关和本地支持的 QUIC 版本处理通告，有效期上限取默认值
func Process(
	entries []types.AltSvcEntry,
	http2Enabled, quicEnabled bool,
	supportedQUICVersions []types.QUICVersion,
	now time.Time,
) types.AlternativeServiceInfoVector {
	return ProcessWithPolicy(entries, Policy{
		HTTP2Enabled:          http2Enabled,
		QUICEnabled:           quicEnabled,
		SupportedQUICVersions: supportedQUICVersions,
	}, now)
}

// ProcessWithPolicy 按策略处理通告
func ProcessWithPolicy(entries []types.AltSvcEntry, policy Policy, now time.Time) types.AlternativeServiceInfoVector {
	return process(entries, policy, now, nil)
}

// observer 接收每个条目的处理结果
type observer func(entry types.AltSvcEntry, protocol types.Protocol, outcome string)

func process(entries []types.AltSvcEntry, policy Policy, now time.Time, observe observer) types.AlternativeServiceInfoVector {
	if observe == nil {
		observe = func(types.AltSvcEntry, types.Protocol, string) {}
	}

	result := make(types.AlternativeServiceInfoVector, 0, len(entries))
	for _, entry := range entries {
		protocol, alpnVersion := types.ParseProtocol(entry.ProtocolID)
		if !IsValid(protocol) {
			observe(entry, protocol, metrics.OutcomeInvalidProtocol)
			continue
		}
		if !IsEnabled(protocol, policy.HTTP2Enabled, policy.QUICEnabled) {
			observe(entry, protocol, metrics.OutcomeDisabled)
			continue
		}

		service := types.NewAlternativeService(protocol, entry.Host, entry.Port)
		expiration := now.Add(policy.lifetime(entry.MaxAge))

		var info types.AlternativeServiceInfo
		switch protocol {
		case types.ProtocolQUIC:
			advertised := entry.Versions
			if len(advertised) == 0 && alpnVersion != types.QUICVersionUnsupported {
				advertised = []types.QUICVersion{alpnVersion}
			}
			common := intersect(advertised, policy.SupportedQUICVersions)
			if len(common) == 0 {
				observe(entry, protocol, metrics.OutcomeNoCommonQUICVersion)
				continue
			}
			info = types.NewQUICInfo(service, expiration, common)
		case types.ProtocolHTTP2:
			info = types.NewHTTP2Info(service, expiration)
		default:
			info = types.NewInfo(service, expiration)
		}

		observe(entry, protocol, metrics.OutcomeAccepted)
		result = append(result, info)
	}
	return result
}

// intersect 返回 advertised 中同时出现在 supported 里的版本
//
// 保持 advertised（服务器偏好）的顺序，重复的版本只保留第一次出现。
func intersect(advertised, supported []types.QUICVersion) []types.QUICVersion {
	if len(advertised) == 0 || len(supported) == 0 {
		return nil
	}
	ok := make(map[types.QUICVersion]struct{}, len(supported))
	for _, v := range supported {
		ok[v] = struct{}{}
	}

	var out []types.QUICVersion
	for _, v := range advertised {
		if _, found := ok[v]; !found {
			continue
		}
		delete(ok, v)
		out = append(out, v)
	}
	return out
}
