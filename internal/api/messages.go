// ABOUTME: Default user-facing messages for failed calls
// ABOUTME: Vietnamese product locale, used when the backend provides none

package api

const (
	msgGenericFailure  = "Đã xảy ra lỗi, vui lòng thử lại sau"
	msgNotLoggedIn     = "Bạn cần đăng nhập để thực hiện thao tác này"
	msgSessionExpired  = "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại"
	msgCannotConnect   = "Không thể kết nối đến máy chủ"
	msgRequestTimeout  = "Yêu cầu đã hết thời gian chờ"
	msgRequestCanceled = "Yêu cầu đã bị hủy"
	msgInvalidResponse = "Phản hồi từ máy chủ không hợp lệ"

	msgLoginFailed      = "Đăng nhập thất bại"
	msgRegisterFailed   = "Đăng ký thất bại"
	msgOTPFailed        = "Xác thực OTP thất bại"
	msgPostsFailed      = "Không thể tải danh sách tin đăng"
	msgPostActionFailed = "Không thể xử lý tin đăng"
	msgCartFailed       = "Không thể cập nhật giỏ hàng"
	msgAlreadyInCart    = "Sản phẩm đã có trong giỏ hàng"
	msgWalletFailed     = "Không thể tải thông tin ví"
	msgWithdrawFailed   = "Không thể tạo yêu cầu rút tiền"
	msgFavoritesFailed  = "Không thể cập nhật danh sách yêu thích"
	msgPaymentFailed    = "Không thể tạo phiên thanh toán"
	msgAdminFailed      = "Không thể thực hiện thao tác quản trị"
	msgBrandsFailed     = "Không thể tải danh sách hãng"
	msgAuctionFailed    = "Không thể xử lý phiên đấu giá"
)
