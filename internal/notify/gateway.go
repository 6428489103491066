// README: Outbound notification gateway interface and the Twilio implementation.
package notify

import (
	"context"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Gateway places voice calls and sends SMS. Implementations must be safe for
// concurrent use.
type Gateway interface {
	Call(ctx context.Context, to, from, callbackURL string) error
	SendMessage(ctx context.Context, to, from, body string) error
}

type TwilioGateway struct {
	client *twilio.RestClient
}

func NewTwilioGateway(accountSID, authToken string) *TwilioGateway {
	return &TwilioGateway{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
	}
}

func (g *TwilioGateway) Call(_ context.Context, to, from, callbackURL string) error {
	params := &twilioapi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetUrl(callbackURL)
	_, err := g.client.Api.CreateCall(params)
	return err
}

func (g *TwilioGateway) SendMessage(_ context.Context, to, from, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)
	_, err := g.client.Api.CreateMessage(params)
	return err
}
