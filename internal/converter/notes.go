package converter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/schema/soo/pml"
	"go.uber.org/zap"
)

const notesSlidePrefix = "ppt/notesSlides/"

// convertNotes 处理演示文稿的备注页
//
// 备注页不属于幻灯片本体，unioffice在打开文档时把它们作为原样透传的
// 包部件保留在ExtraFiles中。这里用库自身的pml.Notes类型反序列化每个
// 备注部件，按与幻灯片相同的形状树遍历转换文本，再序列化写回磁盘上的
// 临时副本，保存时由库原样打包。
func (c *Converter) convertNotes(ppt *presentation.Presentation) error {
	for i := range ppt.ExtraFiles {
		extra := &ppt.ExtraFiles[i]
		if !strings.HasPrefix(extra.ZipPath, notesSlidePrefix) ||
			!strings.HasSuffix(extra.ZipPath, ".xml") {
			continue
		}

		data, err := os.ReadFile(extra.DiskPath)
		if err != nil {
			return fmt.Errorf("读取备注部件 %s 失败: %w", extra.ZipPath, err)
		}

		notes := pml.NewNotes()
		if err := xml.Unmarshal(data, notes); err != nil {
			// 解析不了的部件保持原样透传，不中断整个文件的处理
			if c.logger != nil {
				c.logger.Warn("解析备注部件失败，保持原样",
					zap.String("part", extra.ZipPath), zap.Error(err))
			}
			continue
		}
		if notes.CSld == nil || notes.CSld.SpTree == nil {
			continue
		}

		c.convertGroupShape(notes.CSld.SpTree)

		var buf bytes.Buffer
		buf.WriteString(xml.Header)
		if err := xml.NewEncoder(&buf).Encode(notes); err != nil {
			return fmt.Errorf("序列化备注部件 %s 失败: %w", extra.ZipPath, err)
		}
		if err := os.WriteFile(extra.DiskPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("写回备注部件 %s 失败: %w", extra.ZipPath, err)
		}
	}
	return nil
}
