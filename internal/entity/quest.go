package entity

import "github.com/questdrop/backend/pkg/enum"

type Platform string

var (
	PlatformTwitter  = enum.New(Platform("twitter"))
	PlatformDiscord  = enum.New(Platform("discord"))
	PlatformTelegram = enum.New(Platform("telegram"))
)

type QuestStatusType string

var (
	QuestActive   = enum.New(QuestStatusType("active"))
	QuestArchived = enum.New(QuestStatusType("archived"))
)

type Quest struct {
	Base

	Platform Platform
	Status   QuestStatusType
	Title    string
	Points   uint64
}
