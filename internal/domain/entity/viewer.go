package entity

// CarouselState состояние карусели снимков
type CarouselState string

const (
	CarouselEmpty   CarouselState = "empty"   // записей нет
	CarouselIdle    CarouselState = "idle"    // записи есть, таймер не тикает
	CarouselRunning CarouselState = "running" // таймер запущен, идёт автопрокрутка
)

// ImageTier — на какой ступени деградации удалось показать снимок.
type ImageTier string

const (
	TierAnnotated   ImageTier = "annotated"    // готовый размеченный снимок с сервера
	TierRawFallback ImageTier = "raw_fallback" // исходный снимок, рамки дорисованы на клиенте (если были)
	TierFailed      ImageTier = "failed"       // не загрузилось ничего, показываем заглушку
)

// DisplayImage хранит итог разрешения снимка для одной записи.
type DisplayImage struct {
	Tier   ImageTier
	Data   []byte // пусто для TierFailed
	Source string // имя снимка, из которого получен кадр
	Drawn  bool   // рамки нарисованы на клиенте
}

// Layout раскладка области снимка
type Layout string

const (
	LayoutFullWidth Layout = "full_width" // панель деталей скрыта
	LayoutSplit     Layout = "split"      // снимок сужен, справа панель деталей
)

// DetailField поле панели деталей
type DetailField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DetailPanel содержимое правой панели
type DetailPanel struct {
	Visible bool          `json:"visible"`
	Layout  Layout        `json:"layout"`
	Fields  []DetailField `json:"fields,omitempty"`
}

// RecordRow описывает строку списка записей с уже подставленными прочерками.
type RecordRow struct {
	Index      int    `json:"index"`
	ImageName  string `json:"image_name"`
	DefectType string `json:"defect_type"`
	Location   string `json:"location"`
	Time       string `json:"time"`
}

// Placeholder — фиксированные заглушки области снимка.
type Placeholder string

const (
	PlaceholderNone        Placeholder = ""
	PlaceholderLoading     Placeholder = "loading"      // идёт загрузка результатов
	PlaceholderNoDefects   Placeholder = "no_defects"   // результатов ноль
	PlaceholderNotDetected Placeholder = "not_detected" // детекция ещё не запускалась
	PlaceholderLoadFailed  Placeholder = "load_failed"  // снимок не загрузился
)
