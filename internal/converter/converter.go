package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/liuzl/gocc"
	"github.com/unidoc/unioffice/presentation"
	"go.uber.org/zap"
)

// DefaultMode 默认转换方向：简体转繁体
const DefaultMode = "s2t"

// Converter 持有一个已配置的OpenCC转换引擎，负责文本转换和单个PPTX文件的处理
type Converter struct {
	cc     *gocc.OpenCC
	logger *zap.Logger
}

// New 创建转换器，转换引擎在进程内只初始化一次
func New(mode string, logger *zap.Logger) (*Converter, error) {
	if mode == "" {
		mode = DefaultMode
	}
	cc, err := gocc.New(mode)
	if err != nil {
		return nil, fmt.Errorf("初始化OpenCC转换引擎失败 (mode=%s): %w", mode, err)
	}
	return &Converter{cc: cc, logger: logger}, nil
}

// ConvertText 将简体中文转换为繁体中文
// 空字符串或纯空白字符串原样返回；转换引擎出错时保留原文，保证批处理健壮性
func (c *Converter) ConvertText(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	out, err := c.cc.Convert(text)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("文本转换失败，保留原文", zap.Error(err))
		}
		return text
	}
	return out
}

// ProcessFile 处理单个PPTX文件：打开文档，就地转换所有文本run，
// 保存到新路径。原始文件不会被修改。
//
// 任何一步失败都以error返回，由调用方记录并计为失败，
// 单个损坏文件不会中断整个批处理。
func (c *Converter) ProcessFile(inputPath, outputPath string) error {
	ppt, err := presentation.Open(inputPath)
	if err != nil {
		return fmt.Errorf("打开PPTX文件失败: %w", err)
	}
	defer ppt.Close()

	// 处理幻灯片中的文字：文本框、嵌套组合形状、表格
	for _, slide := range ppt.Slides() {
		sld := slide.X()
		if sld == nil || sld.CSld == nil || sld.CSld.SpTree == nil {
			continue
		}
		c.convertGroupShape(sld.CSld.SpTree)
	}

	// 处理幻灯片备注
	if err := c.convertNotes(ppt); err != nil {
		return fmt.Errorf("处理幻灯片备注失败: %w", err)
	}

	// 确保输出目录存在
	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}

	if err := ppt.SaveToFile(outputPath); err != nil {
		return fmt.Errorf("保存PPTX文件失败: %w", err)
	}
	return nil
}
