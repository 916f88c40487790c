package main

import (
	"fmt"
	"log"

	"affiliate_coupons/internal/pkg/config"
	"affiliate_coupons/pkg/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// 开发环境种子数据：两个推广员、归属各自的推荐记录和一条EDD模板折扣。
// 推广员1持有 paid/pending 两条记录，方便演练归属过滤和状态分组。
func main() {
	config.LoadConfig()
	cfg := config.GlobalConfig.Database
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	seed := []string{
		`INSERT INTO affiliates (affiliate_id, user_id, status, rate, rate_type, payment_email)
		 VALUES (1, 100, 'active', '20', 'percentage', 'a1@example.com'),
		        (2, 200, 'active', '10', 'percentage', 'a2@example.com')
		 ON CONFLICT (affiliate_id) DO NOTHING`,

		`INSERT INTO referrals (referral_id, affiliate_id, amount, status, description, reference, context)
		 VALUES (10, 1, 25.00, 'paid',    'seed referral', 'order-1', 'edd'),
		        (11, 1, 12.50, 'pending', 'seed referral', 'order-2', 'edd'),
		        (20, 2, 40.00, 'paid',    'seed referral', 'order-3', 'edd')
		 ON CONFLICT (referral_id) DO NOTHING`,

		`INSERT INTO edd_discounts (id, name, code, status, is_coupon_template)
		 VALUES (5, 'Affiliate coupon template', 'affwp-template', 'active', 1)
		 ON CONFLICT (id) DO NOTHING`,
	}

	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("Seed statement failed: %v", err)
		}
	}

	log.Println("Seed data inserted")

	// 顺手生成一个管理员 token，便于直接调写接口
	token, err := utils.GenerateToken(1, utils.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to generate admin token: %v", err)
	}
	fmt.Printf("Admin token:\n%s\n", token)
}
