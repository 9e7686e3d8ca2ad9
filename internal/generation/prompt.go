package generation

// defaultPromptTemplate is the built-in template handed to clients when no
// override is configured. Its content is opaque to this application; the
// generation engine is responsible for interpreting the placeholders.
const defaultPromptTemplate = `你是一个专业的内容营销专家。根据以下信息生成高质量的营销文章：

公司信息：{company_info}
产品信息：{product_info}

要求：
1. 文章标题要吸引人，突出产品特色
2. 内容要专业、有说服力
3. 语言要通俗易懂
4. 字数控制在800-1200字
5. 结构清晰，包含引言、主体和结论
6. 适当融入产品卖点

请生成一篇markdown格式的营销文章。`

// PromptProvider hands out the prompt template used by the external
// generation engine. The template is externally configured content; the
// application must not interpret or validate its structure.
type PromptProvider interface {
	// GetPromptTemplate returns the current template verbatim.
	GetPromptTemplate() string
}

// StaticPromptProvider serves a fixed template string.
type StaticPromptProvider struct {
	template string
}

// NewStaticPromptProvider creates a provider serving the given template,
// falling back to the built-in default when template is empty.
func NewStaticPromptProvider(template string) *StaticPromptProvider {
	if template == "" {
		template = defaultPromptTemplate
	}
	return &StaticPromptProvider{template: template}
}

// GetPromptTemplate implements PromptProvider.
func (p *StaticPromptProvider) GetPromptTemplate() string {
	return p.template
}
