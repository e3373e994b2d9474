package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOSSConfig_Enabled(t *testing.T) {
	assert.False(t, (&OSSConfig{}).Enabled())
	assert.False(t, (&OSSConfig{Endpoint: "oss-me-east-1.aliyuncs.com"}).Enabled())
	assert.True(t, (&OSSConfig{
		Endpoint:  "oss-me-east-1.aliyuncs.com",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "shul-files",
	}).Enabled())
}

func TestReportObjectKey(t *testing.T) {
	key := ReportObjectKey("shul-1", "דוח 2026.pdf")
	assert.True(t, strings.HasPrefix(key, "synagogues/shul-1/financialReports/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotContains(t, key, " ")

	// same filename twice yields distinct keys
	assert.NotEqual(t, key, ReportObjectKey("shul-1", "דוח 2026.pdf"))
}

func TestSlugifyFilename(t *testing.T) {
	assert.Equal(t, "report-2026.pdf", slugifyFilename("report 2026.pdf"))
	assert.Equal(t, "file", slugifyFilename("///"))
	assert.Equal(t, "annual_report.pdf", slugifyFilename("annual_report.pdf"))
	assert.Equal(t, "x.pdf", slugifyFilename("..\\evil\\x.pdf"))
}
