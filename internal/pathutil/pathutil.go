// Package pathutil 实现批处理的文件发现和输出路径策略：
// 已转换标记后缀、目录结构镜像、输出路径规范化。
package pathutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMarker 已转换文件的文件名标记
const DefaultMarker = "_tw"

// DefaultExtension 演示文稿文件扩展名
const DefaultExtension = ".pptx"

// NormalizeStem 去掉文件名主干上已有的标记变体
// 历史版本的工具产生过"_tw_v2"后缀，这里一并归一，
// 保证无论对自己的输出跑多少次，最终文件名最多只有一个标记。
func NormalizeStem(stem, marker string) string {
	lower := strings.ToLower(stem)
	if v2 := strings.ToLower(marker) + "_v2"; strings.HasSuffix(lower, v2) {
		return stem[:len(stem)-len(v2)]
	}
	if m := strings.ToLower(marker); strings.HasSuffix(lower, m) {
		return stem[:len(stem)-len(m)]
	}
	return stem
}

// OutputName 由输入文件名计算输出文件名：归一化主干后追加唯一标记
// "report.pptx" -> "report_tw.pptx"；"report_tw.pptx" -> "report_tw.pptx"
func OutputName(filename, marker string) string {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	return NormalizeStem(stem, marker) + marker + ext
}

// IsConverted 判断文件名是否已带转换标记，带标记的文件在批处理中跳过
func IsConverted(filename, marker string) bool {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.HasSuffix(strings.ToLower(stem), strings.ToLower(marker))
}

// hasExtension 扩展名匹配，大小写不敏感
func hasExtension(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// FindFiles 枚举目录中匹配扩展名的文件
// recursive为false时只看直接子项，为true时遍历整个子树；顺序不作保证。
func FindFiles(dir string, recursive bool, ext string) ([]string, error) {
	var files []string

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("读取目录失败: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if hasExtension(entry.Name(), ext) {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasExtension(d.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("遍历目录失败: %w", err)
	}
	return files, nil
}

// MirrorPath 计算批处理模式下的输出路径：
// 输入文件相对输入根目录的子目录结构在输出根目录下原样重建
// root/sub/x.pptx (root -> out) 映射为 out/sub/x_tw.pptx
func MirrorPath(inputPath, inputRoot, outputRoot, marker string) (string, error) {
	rel, err := filepath.Rel(inputRoot, filepath.Dir(inputPath))
	if err != nil {
		return "", fmt.Errorf("计算相对路径失败: %w", err)
	}
	name := OutputName(filepath.Base(inputPath), marker)
	return filepath.Join(outputRoot, rel, name), nil
}

// EnsureOutputPath 规范化单文件模式的输出目标
// 如果输出目标是已存在的目录、或者没有预期的扩展名，
// 则在其中合成"<主干><标记><扩展名>"的文件名；否则按原样使用。
func EnsureOutputPath(inputPath, outputPath, marker, ext string) string {
	info, err := os.Stat(outputPath)
	isDir := err == nil && info.IsDir()
	if !isDir && hasExtension(outputPath, ext) {
		return outputPath
	}
	return filepath.Join(outputPath, OutputName(filepath.Base(inputPath), marker))
}
