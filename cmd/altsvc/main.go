// Package main 提供 altsvc 命令行入口
//
// 读取解码后的 Alt-Svc 记录（JSON），按配置协商并输出可用的备用服务。
//
//	altsvc -origin https://www.example.com -records records.json
//	echo '[{"protocol":"h3","port":443,"max_age":"24h"}]' | altsvc -origin https://a.com -format json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/benbjohnson/clock"

	altsvc "github.com/dep2p/go-altsvc"
	"github.com/dep2p/go-altsvc/internal/util/logger"
	"github.com/dep2p/go-altsvc/pkg/types"
)

var log = logger.Logger("altsvc/cmd")

// errUsage 参数错误，已向 stderr 输出用法
var errUsage = errors.New("invalid usage")

// cli 命令运行环境
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	clock  clock.Clock
}

// flags 命令行参数
type flags struct {
	fs *flag.FlagSet

	// ─────────────────────────────────────────────────────────────────────
	// 输入输出
	// ─────────────────────────────────────────────────────────────────────
	configFile  string
	recordsFile string
	origin      string
	format      string

	// ─────────────────────────────────────────────────────────────────────
	// 策略覆盖（优先级高于环境变量与配置文件）
	// ─────────────────────────────────────────────────────────────────────
	enableHTTP2 bool
	enableQUIC  bool
	versions    string
	maxLifetime time.Duration

	// ─────────────────────────────────────────────────────────────────────
	// 其他
	// ─────────────────────────────────────────────────────────────────────
	verbose     bool
	showVersion bool
}

func newFlags(stderr io.Writer) *flags {
	f := &flags{fs: flag.NewFlagSet("altsvc", flag.ContinueOnError)}
	f.fs.SetOutput(stderr)

	f.fs.StringVar(&f.configFile, "config", "", "配置文件路径（JSON）")
	f.fs.StringVar(&f.recordsFile, "records", "-", "Alt-Svc 记录文件（JSON 数组），- 表示标准输入")
	f.fs.StringVar(&f.origin, "origin", "", "通告来源，例如 https://www.example.com")
	f.fs.StringVar(&f.format, "format", "text", "输出格式 (text/json)")

	f.fs.BoolVar(&f.enableHTTP2, "enable-h2", true, "允许 HTTP/2 备用服务")
	f.fs.BoolVar(&f.enableQUIC, "enable-quic", true, "允许 QUIC 备用服务")
	f.fs.StringVar(&f.versions, "quic-versions", "", "本地支持的 QUIC 版本（逗号分隔），例如 RFCv1,RFCv2")
	f.fs.DurationVar(&f.maxLifetime, "max-lifetime", 0, "备用服务有效期上限")

	f.fs.BoolVar(&f.verbose, "v", false, "输出调试日志")
	f.fs.BoolVar(&f.showVersion, "version", false, "显示版本信息")
	return f
}

// isSet 检查参数是否在命令行中显式设置
func (f *flags) isSet(name string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

func main() {
	c := &cli{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
		clock:  clock.New(),
	}
	if err := c.run(context.Background(), os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		}
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	f := newFlags(c.stderr)
	if err := f.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	if f.showVersion {
		fmt.Fprintln(c.stdout, altsvc.VersionInfo())
		return nil
	}

	logger.SetOutput(c.stderr)
	if f.verbose {
		logger.SetGlobalLevel(slog.LevelDebug)
	}

	if f.origin == "" {
		fmt.Fprintln(c.stderr, "缺少 -origin")
		f.fs.Usage()
		return errUsage
	}
	if f.format != "text" && f.format != "json" {
		return fmt.Errorf("unknown output format %q", f.format)
	}

	origin, err := types.ParseOrigin(f.origin)
	if err != nil {
		return err
	}

	cfg, err := c.buildConfig(f)
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	entries, err := c.readRecords(f.recordsFile)
	if err != nil {
		return fmt.Errorf("读取记录失败: %w", err)
	}

	n, err := altsvc.New(ctx, altsvc.WithConfig(cfg), altsvc.WithClock(c.clock))
	if err != nil {
		return err
	}
	defer func() { _ = n.Close() }()

	infos, err := n.HandleAdvertisement(origin, entries)
	if err != nil {
		return err
	}
	log.Debug("协商完成", "origin", origin, "records", len(entries), "usable", len(infos))

	if f.format == "json" {
		return writeJSON(c.stdout, infos)
	}
	return writeText(c.stdout, infos)
}

// ============================================================================
//                              输出
// ============================================================================

// infoJSON JSON 输出中的单条备用服务
type infoJSON struct {
	Protocol   string    `json:"protocol"`
	Host       string    `json:"host"`
	Port       uint16    `json:"port"`
	Expiration time.Time `json:"expiration"`
	Versions   []string  `json:"versions,omitempty"`
}

func writeJSON(w io.Writer, infos types.AlternativeServiceInfoVector) error {
	out := make([]infoJSON, 0, len(infos))
	for _, info := range infos {
		svc := info.AlternativeService()
		item := infoJSON{
			Protocol:   svc.Protocol.String(),
			Host:       svc.Host,
			Port:       svc.Port,
			Expiration: info.Expiration().UTC(),
		}
		for _, v := range info.AdvertisedVersions() {
			item.Versions = append(item.Versions, v.String())
		}
		out = append(out, item)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(w io.Writer, infos types.AlternativeServiceInfoVector) error {
	for _, line := range infos.Strings() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
