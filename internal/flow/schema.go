package flow

import (
	"fmt"
	"regexp"
)

// Field 服务流程中的一个必填项
type Field struct {
	Question string // 展示给用户的提问文案
	Key      string // 答案回传时使用的字段标识
	Policy   Policy
}

// Schema 有序的必填字段列表，顺序即提问顺序
type Schema struct {
	fields []Field
	byKey  map[string]int
}

// NewSchema 构建 Schema，字段 Key 不允许重复
func NewSchema(fields ...Field) (*Schema, error) {
	byKey := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Key == "" {
			return nil, fmt.Errorf("field %d has empty key", i)
		}
		if _, ok := byKey[f.Key]; ok {
			return nil, fmt.Errorf("duplicate field key: %s", f.Key)
		}
		byKey[f.Key] = i
	}
	return &Schema{fields: fields, byKey: byKey}, nil
}

func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Len() int {
	return len(s.fields)
}

// At 返回第 i 个字段，越界时 panic（调用方负责边界检查）
func (s *Schema) At(i int) Field {
	return s.fields[i]
}

// Lookup 按 Key 查找字段及其位置
func (s *Schema) Lookup(key string) (Field, int, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return Field{}, 0, false
	}
	return s.fields[i], i, true
}

func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{6,}$`)
)

// ServicesSchema Grinstore 服务咨询流程的必填字段。
// 顺序有业务含义：引擎按此顺序逐个提问。
var ServicesSchema = MustSchema(
	Field{
		Question: "Atendimento (B2C ou B2B)",
		Key:      "tipo",
		Policy:   EnumeratedWithFallback("B2C", "B2B"),
	},
	Field{
		Question: "ERP utilizado",
		Key:      "erp",
		Policy:   EnumeratedWithFallback("Tiny"),
	},
	Field{
		Question: "Média de pedidos por mês",
		Key:      "pedidos_mes",
		Policy:   Numeric(),
	},
	Field{
		Question: "Ticket médio",
		Key:      "ticket_medio",
		Policy:   Semantic(),
	},
	Field{
		Question: "Quantidade de SKU",
		Key:      "sku",
		Policy:   Numeric(),
	},
	Field{
		Question: "Email ou telefone para contato",
		Key:      "contato",
		Policy:   PatternSet(emailPattern, phonePattern),
	},
)
