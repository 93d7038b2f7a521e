package prompt

import (
	"regexp"

	"github.com/evida/coach-api/internal/domain"
)

// Topic is a coaching focus area detected from the query and goals.
type Topic string

const (
	TopicSleep   Topic = "sleep"
	TopicFitness Topic = "fitness"
)

var (
	sleepPattern   = regexp.MustCompile(`(?i)sleep|insomnia|tired|fatigue|bedtime|rest`)
	fitnessPattern = regexp.MustCompile(`(?i)run|train|fitness|marathon|steps|activity|workout|exercise`)
)

// MatchTopics decides which metric sub-summaries belong in the prompt by
// case-insensitive keyword matching against the free-text query and the
// goal strings. Unmatched topics are omitted to keep the prompt compact
// and on-topic.
func MatchTopics(query string, goals []domain.Goal) []Topic {
	sleep := sleepPattern.MatchString(query)
	fitness := fitnessPattern.MatchString(query)
	for _, goal := range goals {
		text := goal.Domain + " " + goal.Target
		if !sleep && sleepPattern.MatchString(text) {
			sleep = true
		}
		if !fitness && fitnessPattern.MatchString(text) {
			fitness = true
		}
	}

	var topics []Topic
	if sleep {
		topics = append(topics, TopicSleep)
	}
	if fitness {
		topics = append(topics, TopicFitness)
	}
	return topics
}
