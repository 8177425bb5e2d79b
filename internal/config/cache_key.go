package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuestionsByTypeKey returns the cache key for the question list of one type.
func (r *CacheKeyStruct) QuestionsByTypeKey(questionType string) string {
	return fmt.Sprintf("questions:type:%s", questionType)
}

var CacheKey = NewCacheKeyStruct()
