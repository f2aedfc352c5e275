package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUintArray_Value_Empty(t *testing.T) {
	var arr UintArray

	val, err := arr.Value()

	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), val, "Пустой массив сериализуется как [], не null")
}

func TestUintArray_RoundTrip(t *testing.T) {
	arr := UintArray{10, 20, 30}

	val, err := arr.Value()
	require.NoError(t, err)

	var restored UintArray
	require.NoError(t, restored.Scan(val))
	assert.Equal(t, arr, restored)
}

func TestUintArray_Scan_Nil(t *testing.T) {
	var arr UintArray

	require.NoError(t, arr.Scan(nil))
	assert.Empty(t, arr)
}

func TestLevelConfig_RoundTrip(t *testing.T) {
	cfg := LevelConfig{
		Level1: {Mode: SelectionModeCount, ExamQuestions: 5},
		Level2: {Mode: SelectionModeMarks, TotalMarks: 20},
	}

	val, err := cfg.Value()
	require.NoError(t, err)

	var restored LevelConfig
	require.NoError(t, restored.Scan(val))
	assert.Equal(t, cfg, restored)
}

func TestLevelConfig_Value_Empty(t *testing.T) {
	val, err := LevelConfig{}.Value()

	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), val, "Пустая конфигурация сериализуется как {}")
}

func TestLevelConfig_Scan_Nil(t *testing.T) {
	var cfg LevelConfig

	require.NoError(t, cfg.Scan(nil))
	assert.NotNil(t, cfg)
	assert.Empty(t, cfg)
}
