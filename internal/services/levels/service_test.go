package levels

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/gdshowcase/gd-showcase/database/models"
	"github.com/gdshowcase/gd-showcase/database/repo/levels"
	"github.com/gdshowcase/gd-showcase/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pngHeader PNG 文件签名，足以通过内容嗅探
var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

func setupRepo(t *testing.T) *levels.Repository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Level{}, &models.LevelImage{}))
	return levels.NewRepository(db)
}

func seedLevel(t *testing.T, repo *levels.Repository, store storage.Provider, levelID string) *models.Level {
	ctx := context.Background()
	imageA := fmt.Sprintf("levels/%s-a.png", levelID)
	imageB := fmt.Sprintf("levels/%s-b.png", levelID)
	require.NoError(t, store.SaveWithContext(ctx, imageA, bytes.NewReader(pngHeader)))
	require.NoError(t, store.SaveWithContext(ctx, imageB, bytes.NewReader(pngHeader)))

	level := &models.Level{
		LevelID:    levelID,
		Title:      "Acu",
		Creator:    "neigefeu",
		Type:       models.TypeLevel,
		Status:     models.StatusPending,
		Difficulty: models.DifficultyExtremeDemon,
		Images: []models.LevelImage{
			{Position: 0, URL: "http://localhost/media/" + imageA, StorageID: imageA},
			{Position: 1, URL: "http://localhost/media/" + imageB, StorageID: imageB},
		},
		Thumbnail: models.ImageRef{URL: "http://localhost/media/" + imageA, StorageID: imageA},
	}
	require.NoError(t, repo.Create(level))
	return level
}

// makeFileHeaders 构造 multipart 文件头
func makeFileHeaders(t *testing.T, contents ...[]byte) []*multipart.FileHeader {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for i, content := range contents {
		part, err := writer.CreateFormFile("images", fmt.Sprintf("screenshot-%d.png", i))
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["images"]
}

func validInput(files []*multipart.FileHeader) SubmitInput {
	return SubmitInput{
		LevelID:    "52374843",
		Title:      "Zodiac",
		Creator:    "Bianox",
		Type:       "level",
		Difficulty: "extreme demon",
		VideoLink:  "https://youtu.be/FX9paD5rRsM",
		Files:      files,
	}
}

func TestSubmit(t *testing.T) {
	t.Run("成功投稿", func(t *testing.T) {
		repo := setupRepo(t)
		store := storage.NewMemoryStorage()
		service := NewSubmitService(repo, store)

		files := makeFileHeaders(t, pngHeader, pngHeader)
		level, err := service.Submit(context.Background(), validInput(files))
		require.NoError(t, err)

		assert.Equal(t, models.StatusPending, level.Status)
		require.Len(t, level.Images, 2)
		assert.Equal(t, level.Images[0].StorageID, level.Thumbnail.StorageID)
		assert.Equal(t, 2, store.Len())

		saved, err := repo.GetByLevelID("52374843")
		require.NoError(t, err)
		assert.Equal(t, "Zodiac", saved.Title)
	})

	t.Run("字段校验失败时不上传任何文件", func(t *testing.T) {
		repo := setupRepo(t)
		store := storage.NewMemoryStorage()
		service := NewSubmitService(repo, store)

		input := validInput(makeFileHeaders(t, pngHeader))
		input.LevelID = "not-a-number"
		_, err := service.Submit(context.Background(), input)

		_, ok := AsValidationError(err)
		assert.True(t, ok)
		assert.Zero(t, store.Len())
	})

	t.Run("没有图片被拒绝", func(t *testing.T) {
		service := NewSubmitService(setupRepo(t), storage.NewMemoryStorage())

		_, err := service.Submit(context.Background(), validInput(nil))
		_, ok := AsValidationError(err)
		assert.True(t, ok)
	})

	t.Run("超过图片数量上限被拒绝", func(t *testing.T) {
		store := storage.NewMemoryStorage()
		service := NewSubmitService(setupRepo(t), store)

		files := makeFileHeaders(t, pngHeader, pngHeader, pngHeader, pngHeader, pngHeader, pngHeader)
		_, err := service.Submit(context.Background(), validInput(files))

		_, ok := AsValidationError(err)
		assert.True(t, ok)
		assert.Zero(t, store.Len())
	})

	t.Run("非图片内容被拒绝并回收已上传对象", func(t *testing.T) {
		store := storage.NewMemoryStorage()
		service := NewSubmitService(setupRepo(t), store)

		files := makeFileHeaders(t, pngHeader, []byte("#!/bin/sh\nrm -rf /\n"))
		_, err := service.Submit(context.Background(), validInput(files))

		_, ok := AsValidationError(err)
		assert.True(t, ok)
		assert.Zero(t, store.Len())
	})
}

func TestSetStatus(t *testing.T) {
	repo := setupRepo(t)
	store := storage.NewMemoryStorage()
	service := NewModerationService(repo, store)
	seedLevel(t, repo, store, "100")

	t.Run("更新为已接受", func(t *testing.T) {
		level, err := service.SetStatus(context.Background(), "100", "accepted")
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, level.Status)
	})

	t.Run("非法状态返回校验错误", func(t *testing.T) {
		_, err := service.SetStatus(context.Background(), "100", "approved")
		_, ok := AsValidationError(err)
		assert.True(t, ok)
	})

	t.Run("记录不存在", func(t *testing.T) {
		_, err := service.SetStatus(context.Background(), "404404", "accepted")
		assert.ErrorIs(t, err, ErrLevelNotFound)
	})
}

func TestDeleteLevel(t *testing.T) {
	t.Run("删除记录及全部媒体", func(t *testing.T) {
		repo := setupRepo(t)
		store := storage.NewMemoryStorage()
		service := NewModerationService(repo, store)
		seedLevel(t, repo, store, "200")

		require.NoError(t, service.DeleteLevel(context.Background(), "200"))
		assert.Zero(t, store.Len())

		_, err := repo.GetByLevelID("200")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("部分媒体删除失败时保留记录并收敛", func(t *testing.T) {
		repo := setupRepo(t)
		store := storage.NewMemoryStorage()
		service := NewModerationService(repo, store)
		level := seedLevel(t, repo, store, "300")

		// 第二张截图的存储对象先行消失，删除它会失败
		missing := level.Images[1].StorageID
		require.NoError(t, store.DeleteWithContext(context.Background(), missing))

		err := service.DeleteLevel(context.Background(), "300")
		me, ok := AsMediaError(err)
		require.True(t, ok)
		assert.Equal(t, []string{missing}, me.RemainingMedia)

		// 记录保留，已删成功的截图行被收敛
		kept, err := repo.GetByLevelID("300")
		require.NoError(t, err)
		require.Len(t, kept.Images, 1)
		assert.Equal(t, missing, kept.Images[0].StorageID)
	})

	t.Run("记录不存在", func(t *testing.T) {
		service := NewModerationService(setupRepo(t), storage.NewMemoryStorage())
		assert.ErrorIs(t, service.DeleteLevel(context.Background(), "404404"), ErrLevelNotFound)
	})
}

func TestDeleteImage(t *testing.T) {
	t.Run("删除缩略图来源时重设为下一张", func(t *testing.T) {
		repo := setupRepo(t)
		store := storage.NewMemoryStorage()
		service := NewModerationService(repo, store)
		level := seedLevel(t, repo, store, "400")
		first := level.Images[0].StorageID
		second := level.Images[1].StorageID

		updated, err := service.DeleteImage(context.Background(), "400", first)
		require.NoError(t, err)
		require.Len(t, updated.Images, 1)
		assert.Equal(t, second, updated.Thumbnail.StorageID)

		exists, err := store.Exists(context.Background(), first)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("删除最后一张后回退占位缩略图", func(t *testing.T) {
		repo := setupRepo(t)
		store := storage.NewMemoryStorage()
		service := NewModerationService(repo, store)
		level := seedLevel(t, repo, store, "500")

		for _, img := range level.Images {
			_, err := service.DeleteImage(context.Background(), "500", img.StorageID)
			require.NoError(t, err)
		}

		got, err := repo.GetByLevelID("500")
		require.NoError(t, err)
		assert.Empty(t, got.Images)
		assert.Equal(t, models.DefaultThumbnailURL, got.Thumbnail.URL)
		assert.Empty(t, got.Thumbnail.StorageID)
	})

	t.Run("截图不存在", func(t *testing.T) {
		repo := setupRepo(t)
		store := storage.NewMemoryStorage()
		service := NewModerationService(repo, store)
		seedLevel(t, repo, store, "600")

		_, err := service.DeleteImage(context.Background(), "600", "levels/unknown.png")
		assert.ErrorIs(t, err, ErrImageNotFound)
	})
}

func TestQueryService(t *testing.T) {
	repo := setupRepo(t)
	store := storage.NewMemoryStorage()
	service := NewQueryService(repo)
	seedLevel(t, repo, store, "700")

	t.Run("按ID查询", func(t *testing.T) {
		level, err := service.Get(context.Background(), "700")
		require.NoError(t, err)
		assert.Equal(t, "Acu", level.Title)
	})

	t.Run("查询不存在的记录", func(t *testing.T) {
		_, err := service.Get(context.Background(), "404404")
		assert.ErrorIs(t, err, ErrLevelNotFound)
	})

	t.Run("未知状态过滤值匹配不到任何记录", func(t *testing.T) {
		result, err := service.List(context.Background(), "approved", "", "")
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("未知类型过滤值匹配不到任何记录", func(t *testing.T) {
		result, err := service.List(context.Background(), "", "bossfight", "")
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("列表查询", func(t *testing.T) {
		result, err := service.List(context.Background(), "pending", "level", "")
		require.NoError(t, err)
		assert.Len(t, result, 1)
	})
}
