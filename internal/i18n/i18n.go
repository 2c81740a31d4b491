// Package i18n содержит подписи и заглушки интерфейса просмотра на
// поддерживаемых языках.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Ключи сообщений. Английский текст служит ключом и запасным вариантом.
const (
	FieldTime       = "Capture time"
	FieldDefectType = "Defect type"
	FieldImage      = "Image"
	FieldLocation   = "Location"

	Loading       = "Loading inspection results..."
	NoRecords     = "No defect records"
	NoDefects     = "No defect images"
	NotDetected   = "Detection has not been run for this inspection"
	ImageFailed   = "Image load failed"
	LoadFailed    = "Load failed: %s"
	DetectDone    = "Defect detection completed"
	DetectFailed  = "Detection failed: %s"
	DetectError   = "Error during detection: %s"
	NoInspection  = "Select an inspection first"
	NoInspections = "No inspections"

	ProjectCard    = "%s\nBuilder: %s\nArea: %d\nDuration: %d\nProgress: %d%%"
	InspectionLine = "%s · images: %d · %s"
	SummaryLine    = "Images: %d · With defects: %d · Defects: %d"
	Help           = "Commands:\n/project [id] — open a project\n/inspect <id> — review an inspection\n/detect [id] — run defect detection\n/seek <n> — show record n\n/pause — hold the current record\n/resume — continue the carousel\n/stop — stop the carousel"
	Unknown        = "Unknown command. Use /help."
	SeekRange      = "No record %d: %d records loaded"
	Usage          = "Usage: %s"

	StatusPending = "Not detected"
	StatusRunning = "Detecting..."
	StatusDone    = "Detected"
	StatusFailed  = "Detection failed"
)

var supported = []language.Tag{
	language.English,
	language.Russian,
	language.SimplifiedChinese,
}

var translations = map[string][2]string{
	// ключ: {ru, zh-Hans}
	FieldTime:       {"Время съёмки", "检测时间"},
	FieldDefectType: {"Тип дефекта", "病害类型"},
	FieldImage:      {"Снимок", "图像信息"},
	FieldLocation:   {"Место", "病害位置"},
	Loading:         {"Загружаю результаты обхода...", "正在加载检测结果..."},
	NoRecords:       {"Записей о дефектах нет", "暂无病害记录"},
	NoDefects:       {"Снимков с дефектами нет", "无病害图像"},
	NotDetected:     {"Детекция для этого обхода ещё не запускалась", "该巡检尚未检测"},
	ImageFailed:     {"Не удалось загрузить снимок", "图片加载失败"},
	LoadFailed:      {"Ошибка загрузки: %s", "加载失败: %s"},
	DetectDone:      {"Детекция дефектов завершена", "病害检测已完成！"},
	DetectFailed:    {"Детекция не удалась: %s", "检测失败: %s"},
	DetectError:     {"Ошибка во время детекции: %s", "检测过程中出错: %s"},
	NoInspection:    {"Сначала выберите обход", "请先选择一条巡检记录"},
	NoInspections:   {"Обходов нет", "暂无巡检记录"},
	ProjectCard:     {"%s\nЗастройщик: %s\nПлощадь: %d\nСрок: %d\nГотовность: %d%%", "%s\n建设单位: %s\n总面积: %d\n工期: %d\n推进率: %d%%"},
	InspectionLine:  {"%s · снимков: %d · %s", "%s · 图片数量: %d · %s"},
	SummaryLine:     {"Снимков: %d · С дефектами: %d · Дефектов: %d", "总图片: %d · 病害图片: %d · 病害总数: %d"},
	Help:            {"Команды:\n/project [id] — открыть проект\n/inspect <id> — смотреть обход\n/detect [id] — запустить детекцию\n/seek <n> — показать запись n\n/pause — задержать текущую запись\n/resume — продолжить карусель\n/stop — остановить карусель", "命令:\n/project [id] — 打开项目\n/inspect <id> — 查看巡检\n/detect [id] — 病害检测\n/seek <n> — 显示第 n 条记录\n/pause — 暂停轮播\n/resume — 继续轮播\n/stop — 停止轮播"},
	SeekRange:       {"Нет записи %d: загружено записей %d", "没有第 %d 条记录: 共 %d 条"},
	Unknown:         {"Неизвестная команда. Используйте /help.", "未知命令，请使用 /help"},
	Usage:           {"Использование: %s", "用法: %s"},
	StatusPending:   {"Не проверено", "未检测"},
	StatusRunning:   {"Идёт детекция...", "检测中..."},
	StatusDone:      {"Проверено", "已检测"},
	StatusFailed:    {"Ошибка детекции", "检测失败"},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, tr := range translations {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Russian, key, tr[0])
		_ = b.SetString(language.SimplifiedChinese, key, tr[1])
	}
	return b
}

// Printer переводит ключи на выбранный язык.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New подбирает ближайший поддерживаемый язык к lang ("ru", "zh-CN", "en").
func New(lang string) *Printer {
	tag := language.English
	if lang != "" {
		_, idx, conf := language.NewMatcher(supported).Match(language.Make(lang))
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Tag возвращает выбранный язык.
func (p *Printer) Tag() language.Tag { return p.tag }

// T возвращает перевод ключа, подставляя аргументы.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
