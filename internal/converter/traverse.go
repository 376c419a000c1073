package converter

import (
	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/pml"
)

// convertGroupShape 遍历形状树，转换其中每一个文本run
// 形状树是递归结构：普通形状、嵌套的组合形状、承载表格的graphic frame
func (c *Converter) convertGroupShape(tree *pml.CT_GroupShape) {
	for _, choice := range tree.Choice {
		for _, sp := range choice.Sp {
			if sp.TxBody != nil {
				c.convertTextBody(sp.TxBody)
			}
		}
		for _, grp := range choice.GrpSp {
			c.convertGroupShape(grp)
		}
		for _, frame := range choice.GraphicFrame {
			c.convertGraphicFrame(frame)
		}
	}
}

// convertTextBody 逐段落、逐run转换文本内容
// 只改写run的字符串内容，run边界和格式属性保持不变
func (c *Converter) convertTextBody(body *dml.CT_TextBody) {
	for _, para := range body.P {
		for _, run := range para.EG_TextRun {
			if run.R != nil && run.R.T != "" {
				run.R.T = c.ConvertText(run.R.T)
			}
		}
	}
}

// convertGraphicFrame 处理graphic frame中的表格：逐行、逐单元格转换文本
func (c *Converter) convertGraphicFrame(frame *pml.CT_GraphicalObjectFrame) {
	if frame.Graphic == nil || frame.Graphic.GraphicData == nil {
		return
	}
	for _, any := range frame.Graphic.GraphicData.Any {
		tbl, ok := any.(*dml.Tbl)
		if !ok {
			continue
		}
		for _, row := range tbl.Tr {
			for _, cell := range row.Tc {
				if cell.TxBody != nil {
					c.convertTextBody(cell.TxBody)
				}
			}
		}
	}
}
