// Package latency имитирует сетевую задержку обращения к бэкенду.
//
// Каждое значение, пересекающее границу репозитория, выдаётся наружу
// глубокой копией после фиксированной паузы. Пауза не отменяется и не
// завершается ошибкой: вызывающий обязан относиться к каждой операции
// как к асинхронному сетевому вызову и не может изменить хранимое
// состояние через разделяемую память.
package latency

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultDelay — задержка по умолчанию, как в исходном мок-сервере.
const DefaultDelay = 120 * time.Millisecond

// Simulator выдерживает фиксированную паузу перед выдачей результата.
type Simulator struct {
	delay time.Duration
}

// New создаёт симулятор с указанной задержкой. Нулевая задержка
// допустима и используется в тестах.
func New(delay time.Duration) *Simulator {
	return &Simulator{delay: delay}
}

// Wait выдерживает паузу. Контекст сознательно не принимается:
// задержка всегда доигрывается до конца.
func (s *Simulator) Wait() {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
}

// Clone возвращает глубокую копию значения через JSON-циклирование —
// тем же способом исходный мок копировал данные между «сервером» и
// «клиентом».
func Clone[T any](v T) (T, error) {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("clone marshal: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("clone unmarshal: %w", err)
	}
	return out, nil
}

// Deliver выдерживает паузу симулятора и возвращает глубокую копию
// значения — стандартный путь любого результата наружу.
func Deliver[T any](s *Simulator, v T) (T, error) {
	s.Wait()
	return Clone(v)
}
