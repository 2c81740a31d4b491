package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/i18n"
)

// Сколько строк списка записей помещается в одно сообщение.
const listWindowSize = 15

const (
	actionInspect = "inspect"
	actionDetect  = "detect"
	actionSeek    = "seek"
)

var errBadCallback = errors.New("bad callback data")

func statusIcon(st entity.DetectionStatus) string {
	switch st {
	case entity.DetectionDone:
		return "✅"
	case entity.DetectionRunning:
		return "⏳"
	case entity.DetectionFailed:
		return "❌"
	default:
		return "⚪"
	}
}

func statusLabel(t *i18n.Printer, st entity.DetectionStatus) string {
	switch st {
	case entity.DetectionDone:
		return t.T(i18n.StatusDone)
	case entity.DetectionRunning:
		return t.T(i18n.StatusRunning)
	case entity.DetectionFailed:
		return t.T(i18n.StatusFailed)
	default:
		return t.T(i18n.StatusPending)
	}
}

// formatProject собирает карточку проекта со списком обходов.
func formatProject(t *i18n.Printer, info entity.ProjectInfo, items []entity.InspectionItem, statuses map[int64]entity.DetectionStatus) string {
	var b strings.Builder
	b.WriteString("🏗 ")
	b.WriteString(t.T(i18n.ProjectCard, info.FullName, info.BuilderName, info.TotalArea, info.Duration, info.AdvanceRate))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(t.T(i18n.NoInspections))
		return b.String()
	}

	for _, item := range items {
		st := statuses[item.ID]
		fmt.Fprintf(&b, "%s #%d ", statusIcon(st), item.ID)
		b.WriteString(t.T(i18n.InspectionLine, item.Name, item.TotalImages, statusLabel(t, st)))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// inspectionKeyboard: по строке на обход. Кнопки детекции нет у обходов,
// для которых запуск сейчас выключен.
func inspectionKeyboard(items []entity.InspectionItem, disabled map[int64]bool) *tgbotapi.InlineKeyboardMarkup {
	if len(items) == 0 {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items))
	for _, item := range items {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🔍 "+item.Name, callbackData(actionInspect, item.ID)),
		}
		if !disabled[item.ID] {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("▶ "+item.Name, callbackData(actionDetect, item.ID)))
		}
		rows = append(rows, row)
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

// seekKeyboard строит кнопки «назад» и «вперёд» под снимком карусели.
func seekKeyboard(index, total int) tgbotapi.InlineKeyboardMarkup {
	prev := (index - 1 + total) % total
	next := (index + 1) % total
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀", callbackData(actionSeek, int64(prev))),
		tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", index+1, total), callbackData(actionSeek, int64(index))),
		tgbotapi.NewInlineKeyboardButtonData("▶", callbackData(actionSeek, int64(next))),
	))
}

// formatCaption собирает подпись под снимком: позицию и поля панели деталей.
func formatCaption(index, total int, panel entity.DetailPanel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📷 %d/%d", index+1, total)
	if panel.Visible {
		for _, f := range panel.Fields {
			fmt.Fprintf(&b, "\n%s: %s", f.Key, f.Value)
		}
	}
	return b.String()
}

// formatList выводит сводку и окно списка записей, начиная со строки offset.
func formatList(t *i18n.Printer, summary entity.InspectionSummary, rows []entity.RecordRow, active, offset int) string {
	var b strings.Builder
	b.WriteString("📊 ")
	b.WriteString(t.T(i18n.SummaryLine, summary.TotalImages, summary.DefectImages, summary.TotalDefects))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(t.T(i18n.NoRecords))
		return b.String()
	}

	from, to := listWindow(len(rows), offset, listWindowSize)
	if from > 0 {
		b.WriteString("…\n")
	}
	for _, r := range rows[from:to] {
		marker := "  "
		if r.Index == active {
			marker = "▶"
		}
		fmt.Fprintf(&b, "%s %d. %s · %s · %s · %s\n", marker, r.Index+1, r.ImageName, r.DefectType, r.Location, r.Time)
	}
	if to < len(rows) {
		b.WriteString("…\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// listWindow возвращает видимый полуинтервал [from, to) списка из n строк,
// прокрученного до строки offset. Окно не выходит за конец списка.
func listWindow(n, offset, size int) (int, int) {
	from := min(offset, n-size)
	from = max(from, 0)
	return from, min(from+size, n)
}

func placeholderText(t *i18n.Printer, p entity.Placeholder) string {
	switch p {
	case entity.PlaceholderLoading:
		return "⏳ " + t.T(i18n.Loading)
	case entity.PlaceholderNoDefects:
		return "✅ " + t.T(i18n.NoDefects)
	case entity.PlaceholderNotDetected:
		return "⚪ " + t.T(i18n.NotDetected)
	case entity.PlaceholderLoadFailed:
		return "⚠️ " + t.T(i18n.ImageFailed)
	default:
		return ""
	}
}

func callbackData(action string, value int64) string {
	return action + ":" + strconv.FormatInt(value, 10)
}

// parseCallback разбирает данные кнопки вида "action:value".
func parseCallback(data string) (string, int64, error) {
	action, raw, ok := strings.Cut(data, ":")
	if !ok || action == "" {
		return "", 0, fmt.Errorf("%w: %q", errBadCallback, data)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return "", 0, fmt.Errorf("%w: %q", errBadCallback, data)
	}
	return action, value, nil
}

// parseID разбирает положительный числовой аргумент команды.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive, got %d", id)
	}
	return id, nil
}
