package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/unidoc/unioffice/common/license"
	"go.uber.org/zap"

	"github.com/aihub/ppt2tw/internal/config"
	"github.com/aihub/ppt2tw/internal/converter"
	"github.com/aihub/ppt2tw/internal/logger"
	"github.com/aihub/ppt2tw/internal/pathutil"
	"github.com/aihub/ppt2tw/internal/watcher"
)

type options struct {
	input     string
	dir       string
	output    string
	recursive bool
	watch     bool
	verbose   bool
	version   bool
}

func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.input, "i", "", "输入PPTX文件路径")
	flag.StringVar(&opts.input, "input", "", "输入PPTX文件路径")
	flag.StringVar(&opts.dir, "d", "", "输入目录路径")
	flag.StringVar(&opts.dir, "dir", "", "输入目录路径")
	flag.StringVar(&opts.output, "o", "", "输出文件或目录路径（默认 ./output）")
	flag.StringVar(&opts.output, "output", "", "输出文件或目录路径（默认 ./output）")
	flag.BoolVar(&opts.recursive, "r", false, "递归处理子目录")
	flag.BoolVar(&opts.recursive, "recursive", false, "递归处理子目录")
	flag.BoolVar(&opts.watch, "w", false, "批处理后继续监听目录，转换新增文件（仅目录模式）")
	flag.BoolVar(&opts.watch, "watch", false, "批处理后继续监听目录，转换新增文件（仅目录模式）")
	flag.BoolVar(&opts.verbose, "v", false, "显示详细输出")
	flag.BoolVar(&opts.verbose, "verbose", false, "显示详细输出")
	flag.BoolVar(&opts.version, "version", false, "显示版本信息")
	flag.Parse()
	return opts
}

func main() {
	os.Exit(run())
}

func run() int {
	// .env不存在不是错误
	_ = godotenv.Load()

	opts := parseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: 加载配置失败: %v\n", err)
		return 1
	}

	if opts.version {
		fmt.Printf("%s %s\n", cfg.App.Name, cfg.App.Version)
		return 0
	}

	if err := logger.InitLogger(cfg.Log.Level, opts.verbose); err != nil {
		fmt.Fprintf(os.Stderr, "错误: 初始化日志失败: %v\n", err)
		return 1
	}
	defer logger.Sync()

	// unioffice计量许可证，未设置时保持unlicensed运行
	if key := os.Getenv("UNIDOC_LICENSE_API_KEY"); key != "" {
		if err := license.SetMeteredKey(key); err != nil {
			logger.Warn("设置unioffice许可证失败", zap.Error(err))
		}
	}

	// 输入文件和输入目录互斥，且必须指定其一
	if (opts.input == "") == (opts.dir == "") {
		fmt.Fprintln(os.Stderr, "错误: 必须指定输入文件(-i)或输入目录(-d)之一")
		flag.Usage()
		return 1
	}
	if opts.watch && opts.dir == "" {
		fmt.Fprintln(os.Stderr, "错误: -w/--watch 只能配合目录模式(-d)使用")
		return 1
	}

	output := opts.output
	if output == "" {
		output = cfg.Convert.OutputDir
	}

	conv, err := converter.New(cfg.Convert.Mode, logger.GetLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	if opts.input != "" {
		return runSingle(conv, cfg, opts.input, output)
	}
	return runDir(conv, cfg, opts, output)
}

// runSingle 单文件模式：转换一个文件，成功返回0
func runSingle(conv *converter.Converter, cfg *config.Config, input, output string) int {
	info, err := os.Stat(input)
	if err != nil || info.IsDir() {
		fmt.Fprintf(os.Stderr, "错误: 找不到输入文件: %s\n", input)
		return 1
	}

	outputPath := pathutil.EnsureOutputPath(input, output, cfg.Convert.Marker, cfg.Convert.Extension)
	fmt.Printf("正在处理: %s -> %s\n", input, outputPath)

	if err := conv.ProcessFile(input, outputPath); err != nil {
		logger.Error("转换失败", zap.String("input", input), zap.Error(err))
		fmt.Fprintf(os.Stderr, "转换失败: %s\n", input)
		return 1
	}
	fmt.Printf("转换成功: %s\n", outputPath)
	return 0
}

// runDir 目录模式：批量转换目录下的匹配文件，至少一个成功返回0
func runDir(conv *converter.Converter, cfg *config.Config, opts *options, output string) int {
	info, err := os.Stat(opts.dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "错误: 找不到输入目录: %s\n", opts.dir)
		return 1
	}

	files, err := pathutil.FindFiles(opts.dir, opts.recursive, cfg.Convert.Extension)
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "在 %s 中未找到任何PPTX文件\n", opts.dir)
		return 1
	}

	fmt.Printf("找到 %d 个PPTX文件，开始转换...\n", len(files))

	success, attempted := 0, 0
	process := func(input string) {
		outputPath, err := pathutil.MirrorPath(input, opts.dir, output, cfg.Convert.Marker)
		if err != nil {
			logger.Error("计算输出路径失败", zap.String("input", input), zap.Error(err))
			attempted++
			return
		}
		fmt.Printf("正在处理: %s -> %s\n", input, outputPath)
		attempted++
		if err := conv.ProcessFile(input, outputPath); err != nil {
			logger.Error("转换失败", zap.String("input", input), zap.Error(err))
			fmt.Fprintf(os.Stderr, "转换失败: %s\n", input)
			return
		}
		success++
		fmt.Printf("转换成功: %s\n", outputPath)
	}

	for _, input := range files {
		// 已带标记的文件不再重复转换
		if pathutil.IsConverted(filepath.Base(input), cfg.Convert.Marker) {
			fmt.Printf("跳过已转换文件: %s\n", input)
			continue
		}
		process(input)
	}

	fmt.Printf("\n转换完成！成功: %d/%d\n", success, attempted)

	if opts.watch {
		err := watcher.Watch(opts.dir, opts.recursive, cfg.Convert.Extension, cfg.Convert.Marker,
			logger.GetLogger(), process)
		if err != nil {
			logger.Error("目录监听终止", zap.Error(err))
			return 1
		}
	}

	if success == 0 {
		return 1
	}
	return 0
}
