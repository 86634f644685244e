package service

import (
	"math/rand"
	"strings"
	"time"
)

const requestNoSuffixLength = 6

const requestNoAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RequestNoGenerator 申请单号生成器。
// 时钟与随机源可注入，便于测试时生成确定的单号。
type RequestNoGenerator struct {
	now  func() time.Time
	rand *rand.Rand
}

// NewRequestNoGenerator 创建默认的单号生成器
func NewRequestNoGenerator() *RequestNoGenerator {
	return &RequestNoGenerator{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewRequestNoGeneratorWith 使用指定时钟和随机源创建单号生成器
func NewRequestNoGeneratorWith(now func() time.Time, source rand.Source) *RequestNoGenerator {
	if now == nil {
		now = time.Now
	}
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}
	return &RequestNoGenerator{
		now:  now,
		rand: rand.New(source),
	}
}

// Next 生成单号：SR + 当前日期（YYYYMMDD） + 6 位随机大写字母数字
func (g *RequestNoGenerator) Next() string {
	var builder strings.Builder
	builder.WriteString("SR")
	builder.WriteString(g.now().Format("20060102"))
	for i := 0; i < requestNoSuffixLength; i++ {
		builder.WriteByte(requestNoAlphabet[g.rand.Intn(len(requestNoAlphabet))])
	}
	return builder.String()
}
