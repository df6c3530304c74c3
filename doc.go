// Package altsvc 实现 HTTP 备用服务（Alt-Svc）协商
//
// 服务器通过 Alt-Svc 通告可以用其他协议（HTTP/2、QUIC）或其他端点访问同一资源。
// 本包把解码后的通告记录过滤为可用的备用服务列表，按 origin 缓存，
// 并为 QUIC 备用服务生成 quic-go 拨号配置。
//
// # 快速开始
//
//	n, err := altsvc.New(ctx)
//	if err != nil {
//	    return err
//	}
//	defer n.Close()
//
//	origin, _ := types.ParseOrigin("https://www.example.com")
//	infos, err := n.HandleAdvertisement(origin, []types.AltSvcEntry{
//	    {ProtocolID: "h3", Port: 443, MaxAge: 24 * time.Hour},
//	})
//
// # 组件
//
//   - internal/core/advert: 合法性、启用策略与通告处理
//   - internal/core/altstore: 按 origin 存储的有界缓存
//   - internal/core/metrics: 协议使用与失败位置计数
//   - internal/core/transport/quic: QUIC 拨号配置
//
// 各组件由 Fx 组装，见 fx.go。
package altsvc
