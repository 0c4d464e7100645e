package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// DefaultThumbnailURL 没有任何截图时使用的占位图
const DefaultThumbnailURL = "/images/level1.png"

const (
	MaxTitleLength   = 100
	MaxCreatorLength = 50
)

// LevelStatus 审核状态
type LevelStatus string

const (
	StatusPending  LevelStatus = "pending"
	StatusAccepted LevelStatus = "accepted"
	StatusDenied   LevelStatus = "denied"
)

// Valid 检查审核状态是否合法
func (s LevelStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDenied:
		return true
	}
	return false
}

// LevelType 关卡类型
type LevelType string

const (
	TypeLevel      LevelType = "level"
	TypeLayout     LevelType = "layout"
	TypePlatformer LevelType = "platformer"
	TypeChallenge  LevelType = "challenge"
)

// Valid 检查关卡类型是否合法
func (t LevelType) Valid() bool {
	switch t {
	case TypeLevel, TypeLayout, TypePlatformer, TypeChallenge:
		return true
	}
	return false
}

// LevelDifficulty 游戏内难度
type LevelDifficulty string

const (
	DifficultyAuto         LevelDifficulty = "auto"
	DifficultyEasy         LevelDifficulty = "easy"
	DifficultyNormal       LevelDifficulty = "normal"
	DifficultyHard         LevelDifficulty = "hard"
	DifficultyHarder       LevelDifficulty = "harder"
	DifficultyInsane       LevelDifficulty = "insane"
	DifficultyEasyDemon    LevelDifficulty = "easy demon"
	DifficultyMediumDemon  LevelDifficulty = "medium demon"
	DifficultyHardDemon    LevelDifficulty = "hard demon"
	DifficultyInsaneDemon  LevelDifficulty = "insane demon"
	DifficultyExtremeDemon LevelDifficulty = "extreme demon"
	DifficultyImpossible   LevelDifficulty = "impossible level"
)

// Valid 检查难度是否合法
func (d LevelDifficulty) Valid() bool {
	switch d {
	case DifficultyAuto, DifficultyEasy, DifficultyNormal, DifficultyHard,
		DifficultyHarder, DifficultyInsane, DifficultyEasyDemon,
		DifficultyMediumDemon, DifficultyHardDemon, DifficultyInsaneDemon,
		DifficultyExtremeDemon, DifficultyImpossible:
		return true
	}
	return false
}

// levelIDPattern 外部关卡ID必须是纯数字
var levelIDPattern = regexp.MustCompile(`^\d+$`)

// ImageRef 指向媒体存储中一个对象的引用
type ImageRef struct {
	URL       string `json:"url"`
	StorageID string `gorm:"column:public_id" json:"public_id,omitempty"`
}

// Level 关卡投稿记录
// LevelID 是游戏注册表里的外部ID，按原始数据有意不做唯一约束
type Level struct {
	ID         uint            `gorm:"primarykey" json:"-"`
	LevelID    string          `gorm:"column:level_id;index;not null" json:"id"`
	Title      string          `gorm:"size:100;not null" json:"title"`
	Creator    string          `gorm:"size:50;not null" json:"creator"`
	Type       LevelType       `gorm:"index;not null" json:"type"`
	Status     LevelStatus     `gorm:"index;default:pending;not null" json:"status"`
	Difficulty LevelDifficulty `gorm:"not null" json:"difficulty"`
	VideoLink  string          `json:"videoLink,omitempty"`
	Thumbnail  ImageRef        `gorm:"embedded;embeddedPrefix:thumbnail_" json:"thumbnail"`
	Images     []LevelImage    `gorm:"foreignKey:LevelRowID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt  time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// LevelImage 关卡的一张截图，URL 和 StorageID 必须成对出现
type LevelImage struct {
	ID         uint   `gorm:"primarykey" json:"-"`
	LevelRowID uint   `gorm:"index;not null" json:"-"`
	Position   int    `gorm:"not null" json:"-"`
	URL        string `gorm:"not null" json:"url"`
	StorageID  string `gorm:"column:public_id;index;not null" json:"public_id"`
	Width      int    `json:"-"`
	Height     int    `json:"-"`
	FileSize   int64  `json:"-"`
	MimeType   string `json:"-"`
}

// BeforeSave 持久化前去除空白并校验字段
func (l *Level) BeforeSave(tx *gorm.DB) error {
	l.Title = strings.TrimSpace(l.Title)
	l.Creator = strings.TrimSpace(l.Creator)
	l.LevelID = strings.TrimSpace(l.LevelID)
	l.VideoLink = strings.TrimSpace(l.VideoLink)

	if l.Status == "" {
		l.Status = StatusPending
	}
	if l.Thumbnail.URL == "" {
		l.Thumbnail = ImageRef{URL: DefaultThumbnailURL}
	}

	return l.Validate()
}

// Validate 执行模式级校验
func (l *Level) Validate() error {
	if l.Title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(l.Title) > MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	}
	if l.Creator == "" {
		return fmt.Errorf("creator is required")
	}
	if utf8.RuneCountInString(l.Creator) > MaxCreatorLength {
		return fmt.Errorf("creator must be at most %d characters", MaxCreatorLength)
	}
	if !levelIDPattern.MatchString(l.LevelID) {
		return fmt.Errorf("%s is not a valid level ID", l.LevelID)
	}
	if !l.Type.Valid() {
		return fmt.Errorf("invalid level type: %s", l.Type)
	}
	if !l.Status.Valid() {
		return fmt.Errorf("invalid status: %s", l.Status)
	}
	if !l.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty: %s", l.Difficulty)
	}
	for _, img := range l.Images {
		if img.URL == "" || img.StorageID == "" {
			return fmt.Errorf("every image requires both url and storage id")
		}
	}
	return nil
}

// ImageByStorageID 按存储ID查找截图
func (l *Level) ImageByStorageID(storageID string) (*LevelImage, bool) {
	for i := range l.Images {
		if l.Images[i].StorageID == storageID {
			return &l.Images[i], true
		}
	}
	return nil, false
}

// MediaStorageIDs 返回该记录引用的全部存储对象ID（去重，含非占位缩略图）
func (l *Level) MediaStorageIDs() []string {
	seen := make(map[string]struct{}, len(l.Images)+1)
	ids := make([]string, 0, len(l.Images)+1)
	for _, img := range l.Images {
		if _, ok := seen[img.StorageID]; ok {
			continue
		}
		seen[img.StorageID] = struct{}{}
		ids = append(ids, img.StorageID)
	}
	if l.Thumbnail.StorageID != "" {
		if _, ok := seen[l.Thumbnail.StorageID]; !ok {
			ids = append(ids, l.Thumbnail.StorageID)
		}
	}
	return ids
}
