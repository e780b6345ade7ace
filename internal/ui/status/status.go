// Package status holds the fixed status lookup tables shared by every list.
// Values missing from a table are shown verbatim.
package status

// Table maps a status value to its display label.
type Table map[string]string

var (
	Project = Table{
		"pending":   "待處理",
		"active":    "進行中",
		"completed": "已完成",
		"closed":    "已結案",
	}

	Quote = Table{
		"pending":  "待處理",
		"accepted": "已接受",
		"rejected": "已拒絕",
	}

	ClosureFile = Table{
		"pending":  "待審核",
		"accepted": "已接受",
		"returned": "已退回",
	}
)

const unknown = "未知"

func (t Table) Label(status string) string {
	if label, ok := t[status]; ok {
		return label
	}
	if status == "" {
		return unknown
	}
	return status
}

// Class is the CSS class of a status badge.
func Class(status string) string {
	if status == "" {
		status = "pending"
	}
	return "status-" + status
}
