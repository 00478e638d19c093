// Package model defines data structures for the dialogue service.
package model

// Intent is the classified purpose of a user utterance. The classifier is
// statistical and may emit labels outside this set; such labels are carried
// through responses verbatim and dispatch to the help branch.
type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentProductSearch Intent = "product_search"
	IntentStockInquiry  Intent = "stock_inquiry"
	IntentPriceInquiry  Intent = "price_inquiry"
	IntentOrderStatus   Intent = "order_status"
	IntentProvidePhone  Intent = "provide_phone_number"
	IntentShowVariants  Intent = "show_variants"
	IntentGeneral       Intent = "general"
)

// Known reports whether the intent is one of the fixed enumeration.
func (i Intent) Known() bool {
	switch i {
	case IntentGreeting, IntentProductSearch, IntentStockInquiry, IntentPriceInquiry,
		IntentOrderStatus, IntentProvidePhone, IntentShowVariants, IntentGeneral:
		return true
	}
	return false
}

// Action identifies which response-construction branch and optional tool call
// applies to a request. Exactly one action is assigned per request.
type Action string

const (
	ActionGreetUser           Action = "greet_user"
	ActionSearchProduct       Action = "search_product"
	ActionNoProductsFound     Action = "no_products_found"
	ActionCheckStock          Action = "check_stock"
	ActionGetPrice            Action = "get_price"
	ActionTrackOrder          Action = "track_order"
	ActionGetOrdersByPhone    Action = "get_orders_by_phone"
	ActionRequestOrderInfo    Action = "request_order_info"
	ActionRequestPhoneNumber  Action = "request_phone_number"
	ActionShowAllVariants     Action = "show_all_variants"
	ActionShowColorOptions    Action = "show_color_options"
	ActionShowSizeChart       Action = "show_size_chart"
	ActionCompareVariants     Action = "compare_variants"
	ActionShowProductVariants Action = "show_product_variants"
	ActionProvideHelp         Action = "provide_help"
)
