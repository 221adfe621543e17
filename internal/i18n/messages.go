package i18n

var catalog = map[string]map[string]string{
	LocaleES: {
		"common.success":                 "ok",
		"cart.product_added":             "producto agregado",
		"cart.product_removed":           "producto eliminado",
		"error.bad_request":              "solicitud inválida",
		"error.internal":                 "error interno del servidor",
		"error.unauthorized":             "se requiere autenticación",
		"error.token_invalid":            "token inválido o expirado",
		"error.forbidden":                "no tiene permiso para realizar esta acción",
		"error.not_found":                "recurso no encontrado",
		"error.too_many_requests":        "demasiados intentos, inténtelo más tarde",
		"error.category_not_found":       "categoría no encontrada",
		"error.product_not_found":        "producto no encontrado",
		"error.cart_not_found":           "carrito no encontrado",
		"error.cart_item_not_found":      "ítem de carrito no encontrado",
		"error.product_not_in_cart":      "producto no está en el carrito",
		"error.quantity_invalid":         "la cantidad debe ser un entero positivo",
		"error.product_id_invalid":       "producto_id inválido",
		"error.id_invalid":               "identificador inválido",
		"error.filter_invalid":           "parámetro de filtro inválido: %s",
		"error.price_invalid":            "precio inválido: máximo 8 dígitos enteros y 2 decimales, no negativo",
		"error.name_required":            "el nombre es obligatorio",
		"error.name_too_long":            "el nombre no puede superar %d caracteres",
		"error.sizes_too_long":           "las tallas no pueden superar %d caracteres",
		"error.category_required":        "la categoría es obligatoria",
		"error.category_invalid":         "la categoría indicada no existe",
		"error.cart_item_product_fixed":  "no se puede cambiar el producto de un ítem",
		"error.image_invalid":            "imagen inválida: debe ser JPEG, PNG, GIF o WebP dentro del tamaño permitido",
		"error.username_invalid":         "nombre de usuario inválido",
		"error.username_exists":          "el nombre de usuario ya existe",
		"error.invalid_credentials":      "usuario o contraseña incorrectos",
		"error.user_disabled":            "la cuenta está deshabilitada",
		"error.password_weak":            "la contraseña no cumple la política",
		"error.password_min_length":      "la contraseña debe tener al menos %d caracteres",
		"error.password_require_upper":   "la contraseña debe incluir una mayúscula",
		"error.password_require_lower":   "la contraseña debe incluir una minúscula",
		"error.password_require_number":  "la contraseña debe incluir un número",
		"error.password_require_special": "la contraseña debe incluir un carácter especial",
	},
	LocaleEN: {
		"common.success":                 "ok",
		"cart.product_added":             "product added",
		"cart.product_removed":           "product removed",
		"error.bad_request":              "bad request",
		"error.internal":                 "internal server error",
		"error.unauthorized":             "authentication required",
		"error.token_invalid":            "invalid or expired token",
		"error.forbidden":                "you do not have permission to perform this action",
		"error.not_found":                "resource not found",
		"error.too_many_requests":        "too many attempts, try again later",
		"error.category_not_found":       "category not found",
		"error.product_not_found":        "product not found",
		"error.cart_not_found":           "cart not found",
		"error.cart_item_not_found":      "cart item not found",
		"error.product_not_in_cart":      "product not in cart",
		"error.quantity_invalid":         "quantity must be a positive integer",
		"error.product_id_invalid":       "invalid producto_id",
		"error.id_invalid":               "invalid identifier",
		"error.filter_invalid":           "invalid filter parameter: %s",
		"error.price_invalid":            "invalid price: at most 8 integer digits and 2 decimals, not negative",
		"error.name_required":            "name is required",
		"error.name_too_long":            "name must be at most %d characters",
		"error.sizes_too_long":           "sizes must be at most %d characters",
		"error.category_required":        "category is required",
		"error.category_invalid":         "the given category does not exist",
		"error.cart_item_product_fixed":  "the product of a cart item cannot be changed",
		"error.image_invalid":            "invalid image: must be JPEG, PNG, GIF or WebP within the allowed size",
		"error.username_invalid":         "invalid username",
		"error.username_exists":          "username already exists",
		"error.invalid_credentials":      "invalid username or password",
		"error.user_disabled":            "account is disabled",
		"error.password_weak":            "password does not meet the policy",
		"error.password_min_length":      "password must be at least %d characters",
		"error.password_require_upper":   "password must contain an uppercase letter",
		"error.password_require_lower":   "password must contain a lowercase letter",
		"error.password_require_number":  "password must contain a number",
		"error.password_require_special": "password must contain a special character",
	},
	LocaleZH: {
		"common.success":                 "成功",
		"cart.product_added":             "商品已加入购物车",
		"cart.product_removed":           "商品已移出购物车",
		"error.bad_request":              "请求参数错误",
		"error.internal":                 "服务器内部错误",
		"error.unauthorized":             "需要登录",
		"error.token_invalid":            "登录状态无效或已过期",
		"error.forbidden":                "无权执行该操作",
		"error.not_found":                "资源不存在",
		"error.too_many_requests":        "尝试次数过多，请稍后再试",
		"error.category_not_found":       "分类不存在",
		"error.product_not_found":        "商品不存在",
		"error.cart_not_found":           "购物车不存在",
		"error.cart_item_not_found":      "购物车项不存在",
		"error.product_not_in_cart":      "商品不在购物车中",
		"error.quantity_invalid":         "数量必须为正整数",
		"error.product_id_invalid":       "producto_id 无效",
		"error.id_invalid":               "ID 无效",
		"error.filter_invalid":           "筛选参数无效：%s",
		"error.price_invalid":            "价格无效：最多 8 位整数与 2 位小数，且不能为负",
		"error.name_required":            "名称不能为空",
		"error.name_too_long":            "名称不能超过 %d 个字符",
		"error.sizes_too_long":           "尺码不能超过 %d 个字符",
		"error.category_required":        "分类不能为空",
		"error.category_invalid":         "分类不存在",
		"error.cart_item_product_fixed":  "购物车项的商品不可修改",
		"error.image_invalid":            "图片无效：仅支持大小限制内的 JPEG、PNG、GIF、WebP",
		"error.username_invalid":         "用户名无效",
		"error.username_exists":          "用户名已存在",
		"error.invalid_credentials":      "用户名或密码错误",
		"error.user_disabled":            "账号已禁用",
		"error.password_weak":            "密码不符合安全策略",
		"error.password_min_length":      "密码至少需要 %d 个字符",
		"error.password_require_upper":   "密码需包含大写字母",
		"error.password_require_lower":   "密码需包含小写字母",
		"error.password_require_number":  "密码需包含数字",
		"error.password_require_special": "密码需包含特殊字符",
	},
}
