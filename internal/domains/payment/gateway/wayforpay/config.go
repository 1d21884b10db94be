package wayforpay

// Config carries the merchant identity and endpoints for the WayForPay
// hosted checkout. MerchantAccount and SecretKey are mandatory; config
// validation refuses to start the service without them.
type Config struct {
	MerchantAccount string
	SecretKey       string
	APIURL          string
	DomainName      string
	ReturnURL       string // customer is redirected here after payment
	ServiceURL      string // gateway posts the callback here
}
