package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLevel() *Level {
	return &Level{
		LevelID:    "123456",
		Title:      "Stereo Madness",
		Creator:    "RobTop",
		Type:       TypeLevel,
		Status:     StatusPending,
		Difficulty: DifficultyEasy,
	}
}

func TestLevelValidate(t *testing.T) {
	t.Run("合法记录通过校验", func(t *testing.T) {
		require.NoError(t, validLevel().Validate())
	})

	t.Run("标题为空", func(t *testing.T) {
		level := validLevel()
		level.Title = ""
		assert.Error(t, level.Validate())
	})

	t.Run("标题超长", func(t *testing.T) {
		level := validLevel()
		level.Title = strings.Repeat("a", MaxTitleLength+1)
		assert.Error(t, level.Validate())
	})

	t.Run("长度按字符数而非字节数计算", func(t *testing.T) {
		level := validLevel()
		level.Title = strings.Repeat("关", MaxTitleLength)
		assert.NoError(t, level.Validate())

		level.Title = strings.Repeat("关", MaxTitleLength+1)
		assert.Error(t, level.Validate())

		level = validLevel()
		level.Creator = strings.Repeat("卡", MaxCreatorLength)
		assert.NoError(t, level.Validate())
	})

	t.Run("作者超长", func(t *testing.T) {
		level := validLevel()
		level.Creator = strings.Repeat("b", MaxCreatorLength+1)
		assert.Error(t, level.Validate())
	})

	t.Run("关卡ID必须是纯数字", func(t *testing.T) {
		for _, id := range []string{"", "abc", "12a4", "12 34", "-5"} {
			level := validLevel()
			level.LevelID = id
			assert.Error(t, level.Validate(), "level id %q should be rejected", id)
		}
	})

	t.Run("非法类型", func(t *testing.T) {
		level := validLevel()
		level.Type = "bossfight"
		assert.Error(t, level.Validate())
	})

	t.Run("非法状态", func(t *testing.T) {
		level := validLevel()
		level.Status = "approved"
		assert.Error(t, level.Validate())
	})

	t.Run("非法难度", func(t *testing.T) {
		level := validLevel()
		level.Difficulty = "god demon"
		assert.Error(t, level.Validate())
	})

	t.Run("截图必须同时有URL和存储ID", func(t *testing.T) {
		level := validLevel()
		level.Images = []LevelImage{{URL: "http://example.com/a.png"}}
		assert.Error(t, level.Validate())
	})
}

func TestLevelStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusAccepted.Valid())
	assert.True(t, StatusDenied.Valid())
	assert.False(t, LevelStatus("deleted").Valid())
	assert.False(t, LevelStatus("").Valid())
}

func TestLevelDifficultyValid(t *testing.T) {
	assert.True(t, DifficultyEasyDemon.Valid())
	assert.True(t, DifficultyImpossible.Valid())
	assert.False(t, LevelDifficulty("demon").Valid())
}

func TestBeforeSaveDefaults(t *testing.T) {
	level := validLevel()
	level.Title = "  Back on Track  "
	level.Creator = " RobTop "
	level.Status = ""
	level.Thumbnail = ImageRef{}

	require.NoError(t, level.BeforeSave(nil))

	assert.Equal(t, "Back on Track", level.Title)
	assert.Equal(t, "RobTop", level.Creator)
	assert.Equal(t, StatusPending, level.Status)
	assert.Equal(t, DefaultThumbnailURL, level.Thumbnail.URL)
	assert.Empty(t, level.Thumbnail.StorageID)
}

func TestMediaStorageIDs(t *testing.T) {
	level := validLevel()
	level.Images = []LevelImage{
		{URL: "u1", StorageID: "levels/a.png"},
		{URL: "u2", StorageID: "levels/b.png"},
	}
	level.Thumbnail = ImageRef{URL: "u1", StorageID: "levels/a.png"}

	// 缩略图与第一张截图共享对象时不重复
	assert.Equal(t, []string{"levels/a.png", "levels/b.png"}, level.MediaStorageIDs())

	// 占位缩略图没有存储对象
	level.Thumbnail = ImageRef{URL: DefaultThumbnailURL}
	assert.Len(t, level.MediaStorageIDs(), 2)
}

func TestImageByStorageID(t *testing.T) {
	level := validLevel()
	level.Images = []LevelImage{
		{URL: "u1", StorageID: "levels/a.png"},
	}

	img, ok := level.ImageByStorageID("levels/a.png")
	require.True(t, ok)
	assert.Equal(t, "u1", img.URL)

	_, ok = level.ImageByStorageID("levels/missing.png")
	assert.False(t, ok)
}
