package telegram

import (
	"bytes"
	"image/color"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/domain/port"
	"inspection-viewer/internal/i18n"
)

// sender покрывает часть tgbotapi.BotAPI, нужную представлению.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// ChatView показывает сессию просмотра в одном чате. Снимок карусели
// живёт в одном сообщении, которое редактируется на каждом шаге,
// список записей тоже одно сообщение с отмеченной активной строкой.
// Прокрутка списка считается в строках: сообщение показывает окно
// из listWindowSize строк, начиная с offset.
// Методы вызываются только из горутины диспетчера этого чата.
type ChatView struct {
	out    sender
	chatID int64
	t      *i18n.Printer
	log    logrus.FieldLogger

	info      entity.ProjectInfo
	items     []entity.InspectionItem
	statuses  map[int64]entity.DetectionStatus
	disabled  map[int64]bool // обходы, у которых запуск детекции выключен
	selected  int64
	projectID int // сообщение с карточкой проекта

	summary entity.InspectionSummary
	rows    []entity.RecordRow
	active  int
	offset  int  // первая видимая строка списка
	stale   bool // выделение сменилось, а сообщение со списком ещё нет
	detail  entity.DetailPanel
	listID  int // сообщение со списком записей
	photoID int // сообщение со снимком карусели
}

func NewChatView(out sender, chatID int64, t *i18n.Printer, log logrus.FieldLogger) *ChatView {
	return &ChatView{
		out:      out,
		chatID:   chatID,
		t:        t,
		log:      log.WithField("chat_id", chatID),
		statuses: make(map[int64]entity.DetectionStatus),
		disabled: make(map[int64]bool),
		active:   -1,
	}
}

func (v *ChatView) ShowProject(info entity.ProjectInfo, inspections []entity.InspectionItem) {
	v.info = info
	v.items = append([]entity.InspectionItem(nil), inspections...)
	v.statuses = make(map[int64]entity.DetectionStatus, len(inspections))
	for _, item := range inspections {
		v.statuses[item.ID] = entity.StatusOf(item)
	}
	v.disabled = make(map[int64]bool)
	v.selected = 0
	v.photoID = 0
	v.listID = 0

	msg := tgbotapi.NewMessage(v.chatID, formatProject(v.t, v.info, v.items, v.statuses))
	if kb := inspectionKeyboard(v.items, v.disabled); kb != nil {
		msg.ReplyMarkup = kb
	}
	if sent, ok := v.send(msg); ok {
		v.projectID = sent.MessageID
	}
}

// ShowDetectionStatus обновляет значок обхода в карточке проекта.
// Пока запуск выключен, кнопки детекции у обхода нет.
func (v *ChatView) ShowDetectionStatus(inspectionID int64, status entity.DetectionStatus, triggerEnabled bool) {
	v.selected = inspectionID
	if v.statuses[inspectionID] == status && v.disabled[inspectionID] == !triggerEnabled {
		return
	}
	v.statuses[inspectionID] = status
	v.disabled[inspectionID] = !triggerEnabled

	if v.projectID == 0 {
		return
	}
	text := formatProject(v.t, v.info, v.items, v.statuses)
	var edit tgbotapi.EditMessageTextConfig
	if kb := inspectionKeyboard(v.items, v.disabled); kb != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(v.chatID, v.projectID, text, *kb)
	} else {
		edit = tgbotapi.NewEditMessageText(v.chatID, v.projectID, text)
	}
	v.send(edit)
}

// ShowRecords начинает новый показ: следующий снимок уйдёт новым сообщением.
func (v *ChatView) ShowRecords(rows []entity.RecordRow) {
	v.rows = append([]entity.RecordRow(nil), rows...)
	v.active = -1
	v.offset = 0
	v.stale = false
	v.photoID = 0
	v.listID = 0

	if len(v.rows) == 0 {
		return
	}
	if sent, ok := v.send(tgbotapi.NewMessage(v.chatID, formatList(v.t, v.summary, v.rows, v.active, v.offset))); ok {
		v.listID = sent.MessageID
	}
}

func (v *ChatView) ShowSummary(summary entity.InspectionSummary) {
	v.summary = summary
}

func (v *ChatView) ShowPlaceholder(p entity.Placeholder) {
	if p == entity.PlaceholderNotDetected {
		// Сброс без выбранного обхода или после /stop ничего не сообщает.
		if v.selected == 0 || v.statuses[v.selected] == entity.DetectionDone {
			return
		}
	}

	if text := placeholderText(v.t, p); text != "" {
		v.send(tgbotapi.NewMessage(v.chatID, text))
	}
}

func (v *ChatView) ShowImage(index, total int, img entity.DisplayImage) {
	caption := formatCaption(index, total, v.detail)
	name := img.Source
	data := img.Data

	if img.Tier == entity.TierFailed {
		caption = "⚠️ " + v.t.T(i18n.ImageFailed) + "\n" + caption
		data = placeholderImage()
		name = "placeholder.jpg"
	}
	if name == "" {
		name = "frame.jpg"
	}

	// Список, который никто не прокрутил, догоняет снимок здесь.
	if v.stale {
		v.renderList()
	}
	v.showPhoto(tgbotapi.FileBytes{Name: name, Bytes: data}, caption, seekKeyboard(index, total))
}

func (v *ChatView) ShowDetail(panel entity.DetailPanel) {
	v.detail = panel
}

// MarkActive запоминает выделение. Строку из списка перерисует ScrollList,
// который следует за выделением, а снятие выделения перерисовывается сразу.
func (v *ChatView) MarkActive(index int) {
	if index == v.active {
		return
	}
	v.active = index
	v.stale = true

	if index < 0 || index >= len(v.rows) {
		v.renderList()
	}
}

// ListScroll: прокрутка в строках, контейнер начинается с нуля.
func (v *ChatView) ListScroll() (int, int) {
	return v.offset, 0
}

// RowTop возвращает положение строки относительно верха окна.
func (v *ChatView) RowTop(index int) (int, bool) {
	if index < 0 || index >= len(v.rows) {
		return 0, false
	}
	return index - v.offset, true
}

// ScrollList сдвигает окно списка и переписывает сообщение, если
// сдвинулось окно или выделение.
func (v *ChatView) ScrollList(offset int) {
	from, _ := listWindow(len(v.rows), offset, listWindowSize)
	if from == v.offset && !v.stale {
		return
	}
	v.offset = from
	v.renderList()
}

func (v *ChatView) renderList() {
	v.stale = false
	if v.listID == 0 || len(v.rows) == 0 {
		return
	}
	v.send(tgbotapi.NewEditMessageText(v.chatID, v.listID, formatList(v.t, v.summary, v.rows, v.active, v.offset)))
}

func (v *ChatView) ShowError(message string) {
	v.send(tgbotapi.NewMessage(v.chatID, "⚠️ "+message))
}

func (v *ChatView) Notify(message string) {
	v.send(tgbotapi.NewMessage(v.chatID, message))
}

// showPhoto редактирует сообщение карусели, а если его нет или
// отредактировать не вышло, отправляет новое.
func (v *ChatView) showPhoto(file tgbotapi.FileBytes, caption string, kb tgbotapi.InlineKeyboardMarkup) {
	if v.photoID != 0 {
		media := tgbotapi.NewInputMediaPhoto(file)
		media.Caption = caption
		edit := tgbotapi.EditMessageMediaConfig{
			BaseEdit: tgbotapi.BaseEdit{
				ChatID:      v.chatID,
				MessageID:   v.photoID,
				ReplyMarkup: &kb,
			},
			Media: media,
		}
		_, err := v.out.Send(edit)
		if err == nil {
			return
		}
		v.log.WithError(err).Warn("edit carousel photo failed, sending new one")
		v.photoID = 0
	}

	photo := tgbotapi.NewPhoto(v.chatID, file)
	photo.Caption = caption
	photo.ReplyMarkup = kb
	if sent, ok := v.send(photo); ok {
		v.photoID = sent.MessageID
	}
}

func (v *ChatView) send(c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	msg, err := v.out.Send(c)
	if err != nil {
		// Telegram отвечает ошибкой на правку без изменений.
		if strings.Contains(err.Error(), "message is not modified") {
			v.log.WithError(err).Debug("message unchanged")
			return msg, false
		}
		v.log.WithError(err).Error("send message failed")
		return msg, false
	}
	return msg, true
}

var (
	placeholderOnce sync.Once
	placeholderJPEG []byte
)

// placeholderImage возвращает серую заглушку вместо снимка, который не загрузился.
func placeholderImage() []byte {
	placeholderOnce.Do(func() {
		img := imaging.New(640, 480, color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff})
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.JPEG); err == nil {
			placeholderJPEG = buf.Bytes()
		}
	})
	return placeholderJPEG
}

var (
	_ port.View         = (*ChatView)(nil)
	_ port.ListGeometry = (*ChatView)(nil)
)
