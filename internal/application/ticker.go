package app

import "time"

// Ticker задаёт отменяемую периодическую задачу с явным хендлом.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc создаёт Ticker с заданным периодом.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

// NewTimeTicker оборачивает time.Ticker. Тики, которые владелец не успел
// забрать, теряются, поэтому после долгой загрузки карусель не догоняет
// пропущенное пачкой.
func NewTimeTicker(d time.Duration) Ticker {
	return &timeTicker{t: time.NewTicker(d)}
}

func (t *timeTicker) C() <-chan time.Time { return t.t.C }
func (t *timeTicker) Stop()               { t.t.Stop() }
