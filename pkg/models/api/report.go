package api

import "time"

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ReportInfo struct {
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Inputs      []Input `json:"inputs"`
}

type Notice struct {
	Level   NoticeLevel `json:"level"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Count   int         `json:"count"`
}

type SheetSummary struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

type PreviewRow struct {
	Style  string `json:"style"`
	Values []any  `json:"values"`
}

type Preview struct {
	Name    string       `json:"name"`
	Columns []string     `json:"columns"`
	Rows    []PreviewRow `json:"rows"`
}

type ReportSummary struct {
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	FileName    string         `json:"file_name"`
	GeneratedAt time.Time      `json:"generated_at"`
	Sheets      []SheetSummary `json:"sheets"`
	Notices     []Notice       `json:"notices"`
	Preview     *Preview       `json:"preview,omitempty"`
}

type Error struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}
