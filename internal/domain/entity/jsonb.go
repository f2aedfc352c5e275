package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// UintArray - пользовательский тип для хранения списка идентификаторов в JSONB
type UintArray []uint

// Scan реализует интерфейс sql.Scanner для UintArray
// Используется GORM для чтения JSONB данных из базы
func (a *UintArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*a = UintArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*a = UintArray{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Value реализует интерфейс driver.Valuer для UintArray
// Используется GORM для записи UintArray в JSONB в базе
func (a UintArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(a)
}

// JSONMap - произвольный JSON-объект (метаданные попытки)
type JSONMap map[string]interface{}

// Scan реализует интерфейс sql.Scanner для JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*m = JSONMap{}
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value реализует интерфейс driver.Valuer для JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}
