package app

import (
	"fmt"
	"time"

	"inspection-viewer/internal/domain/entity"
)

// Период автопрокрутки по умолчанию.
const DefaultCarouselInterval = 2000 * time.Millisecond

// ShowEvent сообщает, какую запись сейчас показывать.
// Record == nil означает пустую карусель.
type ShowEvent struct {
	Index  int
	Total  int
	Record *entity.DefectRecord
}

// Empty сообщает, что показывать нечего.
func (e ShowEvent) Empty() bool { return e.Record == nil }

// CarouselController владеет текущим индексом и единственным таймером
// автопрокрутки. Не потокобезопасен: им владеет одна горутина сессии.
type CarouselController struct {
	records   []entity.DefectRecord
	index     int
	state     entity.CarouselState
	ticker    Ticker
	interval  time.Duration
	newTicker TickerFunc
	onShow    func(ShowEvent)
}

// NewCarouselController создаёт карусель в состоянии Empty.
func NewCarouselController(interval time.Duration, newTicker TickerFunc, onShow func(ShowEvent)) *CarouselController {
	if interval <= 0 {
		interval = DefaultCarouselInterval
	}
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	if onShow == nil {
		onShow = func(ShowEvent) {}
	}
	return &CarouselController{
		index:     -1,
		state:     entity.CarouselEmpty,
		interval:  interval,
		newTicker: newTicker,
		onShow:    onShow,
	}
}

// Start запускает карусель по новому набору записей.
// Предыдущий таймер всегда останавливается до создания нового.
func (c *CarouselController) Start(records []entity.DefectRecord) {
	c.cancelTicker()
	c.records = append([]entity.DefectRecord(nil), records...)

	if len(c.records) == 0 {
		c.index = -1
		c.state = entity.CarouselEmpty
		c.emit()
		return
	}

	c.index = 0
	c.emit()
	c.state = entity.CarouselRunning
	c.ticker = c.newTicker(c.interval)
}

// Tick сдвигает карусель на следующую запись. Работает только в Running.
func (c *CarouselController) Tick() {
	if c.state != entity.CarouselRunning || len(c.records) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.records)
	c.emit()
}

// Seek показывает запись i, не трогая таймер и его фазу.
func (c *CarouselController) Seek(i int) error {
	if i < 0 || i >= len(c.records) {
		return fmt.Errorf("seek %d of %d: %w", i, len(c.records), entity.ErrIndexOutOfRange)
	}

	prev := c.state
	c.state = entity.CarouselIdle
	c.index = i
	c.emit()
	c.state = prev
	return nil
}

// Pause останавливает автопрокрутку, оставляя текущую запись.
func (c *CarouselController) Pause() {
	if c.state != entity.CarouselRunning {
		return
	}
	c.cancelTicker()
	c.state = entity.CarouselIdle
}

// Resume снова запускает автопрокрутку с текущей записи.
func (c *CarouselController) Resume() {
	if c.state != entity.CarouselIdle || len(c.records) == 0 {
		return
	}
	c.cancelTicker()
	c.state = entity.CarouselRunning
	c.ticker = c.newTicker(c.interval)
}

// Stop останавливает таймер и отбрасывает записи.
func (c *CarouselController) Stop() {
	c.cancelTicker()
	c.records = nil
	c.index = -1
	c.state = entity.CarouselEmpty
}

// Ticks возвращает канал живого таймера, nil если таймера нет.
// Чтение из nil-канала в select никогда не срабатывает.
func (c *CarouselController) Ticks() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.C()
}

// State возвращает состояние карусели.
func (c *CarouselController) State() entity.CarouselState { return c.state }

// Index возвращает текущий индекс; false для пустой карусели.
func (c *CarouselController) Index() (int, bool) {
	if c.index < 0 {
		return 0, false
	}
	return c.index, true
}

// Len возвращает количество записей в карусели.
func (c *CarouselController) Len() int { return len(c.records) }

func (c *CarouselController) cancelTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

func (c *CarouselController) emit() {
	ev := ShowEvent{Index: c.index, Total: len(c.records)}
	if c.index >= 0 {
		rec := c.records[c.index]
		ev.Record = &rec
	}
	c.onShow(ev)
}
