package types

// ============================================================================
//                              事件
// ============================================================================

// EvtAlternativesChanged origin 的备用服务列表发生变化
//
// Alternatives 为空表示该 origin 已被清除。
type EvtAlternativesChanged struct {
	Origin       Origin
	Alternatives AlternativeServiceInfoVector
}

// Cleared 报告该事件是否表示清除
func (e EvtAlternativesChanged) Cleared() bool {
	return len(e.Alternatives) == 0
}
