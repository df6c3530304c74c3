package types

// ============================================================================
//                              AlternateProtocolUsage - 备用协议使用结果
// ============================================================================

// AlternateProtocolUsage 一次请求中备用协议的使用结果，用于聚合监控
type AlternateProtocolUsage int

const (
	// UsageNoRace 未与主任务竞速，直接使用了备用协议
	UsageNoRace AlternateProtocolUsage = iota
	// UsageWonRace 与主任务竞速并获胜
	UsageWonRace
	// UsageMainJobWonRace 主任务竞速获胜
	UsageMainJobWonRace
	// UsageMappingMissing 没有可用的备用服务映射
	UsageMappingMissing
	// UsageBroken 备用服务被标记为不可用
	UsageBroken
	// UsageDNSAlpnH3JobWonWithoutRace DNS ALPN H3 任务在未竞速时获胜
	UsageDNSAlpnH3JobWonWithoutRace
	// UsageDNSAlpnH3JobWonRace DNS ALPN H3 任务竞速获胜
	UsageDNSAlpnH3JobWonRace
	// UsageUnspecifiedReason 未说明原因
	UsageUnspecifiedReason
)

// String 返回使用结果的字符串表示
func (u AlternateProtocolUsage) String() string {
	switch u {
	case UsageNoRace:
		return "no_race"
	case UsageWonRace:
		return "won_race"
	case UsageMainJobWonRace:
		return "main_job_won_race"
	case UsageMappingMissing:
		return "mapping_missing"
	case UsageBroken:
		return "broken"
	case UsageDNSAlpnH3JobWonWithoutRace:
		return "dns_alpn_h3_job_won_without_race"
	case UsageDNSAlpnH3JobWonRace:
		return "dns_alpn_h3_job_won_race"
	case UsageUnspecifiedReason:
		return "unspecified_reason"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              BrokenAlternateProtocolLocation
// ============================================================================

// BrokenAlternateProtocolLocation 发现备用服务不可用的调用位置
type BrokenAlternateProtocolLocation int

const (
	// BrokenLocationHTTPStreamFactoryJob 流工厂任务
	BrokenLocationHTTPStreamFactoryJob BrokenAlternateProtocolLocation = iota
	// BrokenLocationQUICStreamFactory QUIC 流工厂
	BrokenLocationQUICStreamFactory
	// BrokenLocationHTTPStreamFactoryJobAlt 流工厂备用任务
	BrokenLocationHTTPStreamFactoryJobAlt
	// BrokenLocationHTTPStreamFactoryJobMain 流工厂主任务
	BrokenLocationHTTPStreamFactoryJobMain
	// BrokenLocationQUICHTTPStream QUIC HTTP 流
	BrokenLocationQUICHTTPStream
	// BrokenLocationHTTPNetworkTransaction 网络事务
	BrokenLocationHTTPNetworkTransaction
)

// String 返回位置的字符串表示
func (l BrokenAlternateProtocolLocation) String() string {
	switch l {
	case BrokenLocationHTTPStreamFactoryJob:
		return "http_stream_factory_job"
	case BrokenLocationQUICStreamFactory:
		return "quic_stream_factory"
	case BrokenLocationHTTPStreamFactoryJobAlt:
		return "http_stream_factory_job_alt"
	case BrokenLocationHTTPStreamFactoryJobMain:
		return "http_stream_factory_job_main"
	case BrokenLocationQUICHTTPStream:
		return "quic_http_stream"
	case BrokenLocationHTTPNetworkTransaction:
		return "http_network_transaction"
	default:
		return "unknown"
	}
}
