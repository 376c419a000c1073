package converter

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/schema/soo/pml"
)

// 最小的备注页部件，备注占位符里有一条简体文本
const notesSlideXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:notes xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/><p:sp><p:nvSpPr><p:cNvPr id="2" name="Notes Placeholder"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:p><a:r><a:t>简体备注</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:notes>`

// firstRunText 取形状树中第一个文本run的内容
func firstRunText(tree *pml.CT_GroupShape) string {
	for _, choice := range tree.Choice {
		for _, sp := range choice.Sp {
			if sp.TxBody == nil {
				continue
			}
			for _, para := range sp.TxBody.P {
				for _, run := range para.EG_TextRun {
					if run.R != nil {
						return run.R.T
					}
				}
			}
		}
	}
	return ""
}

func TestConvertNotesRewritesNotesParts(t *testing.T) {
	conv := newTestConverter(t)

	dir := t.TempDir()
	diskPath := filepath.Join(dir, "notesSlide1.xml")
	require.NoError(t, os.WriteFile(diskPath, []byte(notesSlideXML), 0o644))
	mediaPath := filepath.Join(dir, "image1.png")
	require.NoError(t, os.WriteFile(mediaPath, []byte{0x89, 'P', 'N', 'G'}, 0o644))

	ppt := presentation.New()
	defer ppt.Close()
	ppt.ExtraFiles = append(ppt.ExtraFiles,
		common.ExtraFile{ZipPath: "ppt/notesSlides/notesSlide1.xml", DiskPath: diskPath},
		common.ExtraFile{ZipPath: "ppt/media/image1.png", DiskPath: mediaPath},
	)

	require.NoError(t, conv.convertNotes(ppt))

	// 备注部件被改写为繁体，且仍是库能解析的合法部件
	data, err := os.ReadFile(diskPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "简体备注")

	notes := pml.NewNotes()
	require.NoError(t, xml.Unmarshal(data, notes))
	require.NotNil(t, notes.CSld)
	require.NotNil(t, notes.CSld.SpTree)
	assert.Equal(t, "簡體備註", firstRunText(notes.CSld.SpTree))

	// 非备注部件原封不动
	media, err := os.ReadFile(mediaPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, media)
}

func TestConvertNotesLeavesUnparsablePartAlone(t *testing.T) {
	conv := newTestConverter(t)

	dir := t.TempDir()
	diskPath := filepath.Join(dir, "notesSlide1.xml")
	require.NoError(t, os.WriteFile(diskPath, []byte("这不是XML"), 0o644))

	ppt := presentation.New()
	defer ppt.Close()
	ppt.ExtraFiles = append(ppt.ExtraFiles,
		common.ExtraFile{ZipPath: "ppt/notesSlides/notesSlide1.xml", DiskPath: diskPath},
	)

	// 解析失败的部件保持原样透传，不报错
	require.NoError(t, conv.convertNotes(ppt))
	data, err := os.ReadFile(diskPath)
	require.NoError(t, err)
	assert.Equal(t, "这不是XML", string(data))
}
