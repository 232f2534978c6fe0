package push

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

func errResponse(resp *resty.Response) error {
	return fmt.Errorf("push provider returned %s: %s", resp.Status(), resp.String())
}

// InvalidTokens 从回执中筛出服务商报废的令牌
func InvalidTokens(tickets []Ticket) []string {
	var invalid []string
	for _, t := range tickets {
		if t.Status == "error" && t.Details.Error == TicketErrorDeviceNotRegistered && t.Token != "" {
			invalid = append(invalid, t.Token)
		}
	}
	return invalid
}
