// Package prompt builds the Chinese prompt text for the three generation
// stages. All three builders are pure; field validation happens at the HTTP
// boundary before a record reaches them.
package prompt

import (
	"fmt"

	"github.com/zjjtools/mededu/internal/patient"
)

// Draft returns the stage-1 prompt producing the initial education sheet
// (V1): a fixed six-section template with "- " bullet lists under every
// heading, a preamble and a closing wish.
func Draft(p patient.Record) string {
	return fmt.Sprintf(`你是儿科临床药师，请按以下模板写一份用药教育，所有小标题内容用“- ”清单呈现。
患者：%s

模板：
前言（尊敬的XX家长，您好！您的孩子因<原因>，需口服<药名>，该药为<类别>。为了……特此沟通。）

1. 药物作用和目的
2. 剂量和给药时间
3. 不良反应监测
4. 药物相互作用
5. 储存管理
6. 生活方式建议

如有疑问请随时联系儿科医生或药师……祝孩子早日康复！
`, p.PromptJSON())
}

// Feedback returns the self-critique prompt. The model is told to answer
// with a single line of pure JSON of the shape {"feedback":"..."} and to
// escape any embedded newlines or tabs; in practice it does not always
// comply, which is why the feedback extractor normalizes its reply.
func Feedback(p patient.Record, draft string) string {
	return fmt.Sprintf(`你是资深儿科临床药师。
请用 3-5 句话、专业且通俗地指出下方 V1 用药教育在准确性、完整性或家长易读性上的具体不足（不要出现模板字面量）。

【患者信息】
%s

【V1 用药教育】
%s
输出要求（严格执行）：
- 返回内容只能是**一行纯 JSON**，禁止出现 Markdown 围栏、禁止多行文本；
- 所有长文本里的换行、制表符必须转义成 \n、\t；
- 结构如下：
{"feedback":"真实评价"}`, p.PromptJSONIndent(), draft)
}

// Refine returns the stage-3 prompt rewriting the sheet from scratch. It
// pins the six section headings in a fixed order, bans markdown symbols and
// forbids any trailing commentary.
func Refine(p patient.Record, draft, feedback string) string {
	return fmt.Sprintf(`你是儿科临床药师。
请根据下方「V1 内容」和「审方反馈」重写一份完整、准确、家长友好的 V3 用药教育，必须满足：

1. 禁止出现任何 Markdown 符号（如 ###、***、** 等）；
2. 标题仅用中文数字序号（如“1. 药物作用和目的”），下方用“- ”引出清单；
3. 包含且仅包含以下 6 个小节：
   - 前言（原因、药名、类别、祝愿）
   - 1. 药物作用和目的
   - 2. 剂量和给药时间（含漏服处理、分剂量操作）
   - 3. 不良反应监测（≥3 条常见表现）
   - 4. 药物相互作用（简洁提醒）
   - 5. 储存管理（温度、避光、有效期）
   - 6. 生活方式建议（饮食、作息、复诊）
   - 如有疑问请随时联系儿科医生或药师，我们将持续为您和孩子的健康保驾护航。祝孩子早日康复！
4. 全文不要再出现任何额外解释或总结。

【患者信息】
%s

【V1 内容】
%s

【审方反馈】
%s

直接输出最终用药教育全文，不要额外解释。
`, p.PromptJSONIndent(), draft, feedback)
}
