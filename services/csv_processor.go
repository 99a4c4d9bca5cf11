package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"csv2project/config"
	"csv2project/models"
	"csv2project/utils"
)

// 予約列名 → 正規名。各列は大文字始まり・小文字の2通りを受け付けます
var reservedColumns = map[string]string{
	"Title":     "title",
	"title":     "title",
	"Body":      "body",
	"body":      "body",
	"Labels":    "labels",
	"labels":    "labels",
	"Assignees": "assignees",
	"assignees": "assignees",
}

// 同じ列が両方の表記で存在する場合の優先順
var reservedLookupOrder = map[string][]string{
	"title":     {"Title", "title"},
	"body":      {"Body", "body"},
	"labels":    {"Labels", "labels"},
	"assignees": {"Assignees", "assignees"},
}

// CSVProcessor はCSVファイルの読み込みを担当します
type CSVProcessor struct {
	config *config.Config
	logger *utils.Logger
}

// NewCSVProcessor は新しいCSVプロセッサーを作成します
func NewCSVProcessor(cfg *config.Config, logger *utils.Logger) *CSVProcessor {
	return &CSVProcessor{
		config: cfg,
		logger: logger,
	}
}

// EachImportRow は設定されたCSVファイルを1行ずつ読み込み fn に渡します
//
// 行は読み込んだ順に処理され、fn がエラーを返した時点で中断します。
func (p *CSVProcessor) EachImportRow(fn func(models.ImportRow) error) error {
	p.logger.LogInfo("CSVファイル '%s' を読み込みます", p.config.CSVPath)

	file, err := os.Open(p.config.CSVPath)
	if err != nil {
		return fmt.Errorf("CSVオープンエラー: %w", err)
	}
	defer file.Close()

	reader, err := NewImportReader(file, p.config.DelimiterRune())
	if err != nil {
		return err
	}

	count := 0
	for {
		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		count++
		if err := fn(row); err != nil {
			return err
		}
	}

	p.logger.LogInfo("CSVを読み込みました: %d 行", count)
	return nil
}

// ImportReader はヘッダー付きCSVを1行ずつ取り込み行に変換します
//
// 行のセル数がヘッダーより少なければ不足分は空、多ければ超過分は無視します。
type ImportReader struct {
	reader  *csv.Reader
	headers []string
	line    int
}

// NewImportReader はヘッダー行を読み込んでリーダーを作成します
func NewImportReader(r io.Reader, delimiter rune) (*ImportReader, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("CSVにヘッダー行がありません")
	}
	if err != nil {
		return nil, fmt.Errorf("CSVヘッダー読み込みエラー: %w", err)
	}

	return &ImportReader{reader: reader, headers: headers}, nil
}

// Next は次の行を返します。最後まで読んだら io.EOF を返します
func (ir *ImportReader) Next() (models.ImportRow, error) {
	record, err := ir.reader.Read()
	if errors.Is(err, io.EOF) {
		return models.ImportRow{}, io.EOF
	}
	ir.line++
	if err != nil {
		return models.ImportRow{}, fmt.Errorf("CSV読み込みエラー (行 %d): %w", ir.line, err)
	}
	return buildImportRow(ir.line, ir.headers, record), nil
}

// ParseImportCSV はCSV全体を取り込み行のスライスに変換します
func ParseImportCSV(r io.Reader, delimiter rune) ([]models.ImportRow, error) {
	reader, err := NewImportReader(r, delimiter)
	if err != nil {
		return nil, err
	}

	var rows []models.ImportRow
	for {
		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// buildImportRow はヘッダーと値から ImportRow を作ります
func buildImportRow(line int, headers, record []string) models.ImportRow {
	values := make(map[string]string, len(headers))
	var extras []models.ExtraColumn
	extraIndex := make(map[string]int)

	for i, header := range headers {
		value := ""
		if i < len(record) {
			value = record[i]
		}
		values[header] = value

		if _, reserved := reservedColumns[header]; reserved {
			continue
		}
		// 同名ヘッダーは最初の位置で後の値が勝つ
		if idx, ok := extraIndex[header]; ok {
			extras[idx].Value = value
			continue
		}
		extraIndex[header] = len(extras)
		extras = append(extras, models.ExtraColumn{Name: header, Value: value})
	}

	row := models.ImportRow{
		Line:   line,
		Title:  strings.TrimSpace(reservedValue(values, "title")),
		Body:   reservedValue(values, "body"),
		Extras: extras,
	}

	if labels := reservedValue(values, "labels"); labels != "" {
		row.Labels = splitList(labels, nil)
	}
	if assignees := reservedValue(values, "assignees"); assignees != "" {
		row.Assignees = splitList(assignees, func(s string) string { return strings.TrimLeft(s, "@") })
	}

	return row
}

func reservedValue(values map[string]string, canonical string) string {
	for _, header := range reservedLookupOrder[canonical] {
		if v := values[header]; v != "" {
			return v
		}
	}
	return ""
}

// splitList はカンマ区切りの値を分割し、前後の空白を取り除きます
func splitList(raw string, normalize func(string) string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if normalize != nil {
			part = normalize(part)
		}
		result = append(result, part)
	}
	return result
}

// IsReservedColumn はヘッダー名が予約列かを返します
func IsReservedColumn(name string) bool {
	_, ok := reservedColumns[name]
	return ok
}
