package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	NotifierWebhookURL string

	TenderBidWindowHours        string
	TenderEvaluationWindowHours string
	TenderReminderLeadHours     string
	MaxMatchedSuppliers         string
	AutoSelectThreshold         string
	OrderMarkupPercent          string
	SideEffectTimeoutSeconds    string
}
