package ws

import "go.uber.org/zap"

type Hubs struct {
	Preview *PreviewHub
}

func NewHubs(logger *zap.Logger) *Hubs {
	return &Hubs{
		Preview: NewPreviewHub(logger),
	}
}
