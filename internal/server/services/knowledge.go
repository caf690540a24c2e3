package services

import (
	"fmt"

	"github.com/dmitrijs2005/leaseportal/internal/common"
)

var knowledgeBaseTopics = []string{
	"All",
	"Federal Leasing Basics",
	"Lease Acquisition Process",
	"Lease Administration",
	"Space Planning",
}

// KnowledgeBase is the fixed topic selector shown after login.
type KnowledgeBase struct{}

// Topics returns a copy of the topic list; the first entry is the default.
func (KnowledgeBase) Topics() []string {
	return append([]string(nil), knowledgeBaseTopics...)
}

func (KnowledgeBase) Select(topic string) (string, error) {
	for _, t := range knowledgeBaseTopics {
		if t == topic {
			return fmt.Sprintf("You selected: %s", t), nil
		}
	}
	return "", common.ErrUnknownTopic
}
