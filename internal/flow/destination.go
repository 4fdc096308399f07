package flow

// Destination 查询分类结果
type Destination string

const (
	DestinationEmprego  Destination = "emprego"  // 求职咨询
	DestinationPedido   Destination = "pedido"   // 订单/物流咨询
	DestinationServicos Destination = "servicos" // 服务商机，进入信息采集流程
	DestinationResposta Destination = "resposta" // 开放问题，直接回答
)

// ParseDestination 解析分类器返回的标签
func ParseDestination(s string) (Destination, bool) {
	switch Destination(s) {
	case DestinationEmprego, DestinationPedido, DestinationServicos, DestinationResposta:
		return Destination(s), true
	}
	return "", false
}
