// Package sdk provides the high-level request types users build and execute
// against a Hiero network: transactions, queries, chunked submissions, and
// mirror-node topic subscriptions.
//
// # Quick Start
//
// Create a client for a known network, set the operator that pays for and
// signs requests, then build and execute transactions:
//
//	import (
//		"github.com/shamank/hiero-sdk-go/pkg/client"
//		"github.com/shamank/hiero-sdk-go/pkg/crypto"
//		"github.com/shamank/hiero-sdk-go/pkg/hedera"
//		"github.com/shamank/hiero-sdk-go/pkg/sdk"
//	)
//
//	func main() {
//		c := client.ForTestnet()
//		defer c.Close()
//
//		key, _ := crypto.PrivateKeyFromString(os.Getenv("OPERATOR_KEY"))
//		operator, _ := hedera.AccountIDFromString(os.Getenv("OPERATOR_ID"))
//		c.SetOperator(operator, key)
//
//		tx := sdk.NewTransferTransaction()
//		tx.AddHbarTransfer(operator, hedera.NewHbar(-1))
//		tx.AddHbarTransfer(hedera.NewAccountID(0, 0, 3), hedera.NewHbar(1))
//
//		resp, err := tx.Execute(context.Background(), c)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		receipt, err := resp.GetReceipt(context.Background(), c)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println("status:", receipt.Status)
//	}
//
// # Architecture
//
// Every operation type supplies two things: a body builder that produces the
// operation-specific protobuf payload, and the name of the gRPC method that
// accepts it. Everything else is shared:
//
//   - Transaction: freeze (bind transaction ID and node), sign, wrap into the
//     signed wire envelope, submit with retry and failover
//   - Query: attach a response header, embed a signed payment transfer for
//     fee-bearing queries, rotate across nodes on retry
//   - Chunked transactions: split large payloads into ordered chunks that
//     share a correlating initial transaction ID
//   - TopicMessageQuery: server-streaming subscription against a mirror node
//     with bounded automatic resubscription
//
// # Error Handling
//
// Failures carry typed errors from the hedera package: PrecheckError for node
// rejections, ReceiptStatusError for transactions that reached consensus but
// failed, MaxAttemptsError when the retry budget runs out, and ChunkError for
// partial chunked submissions. Match them with errors.As or the hedera.IsX
// helpers.
//
// # Thread Safety
//
// Individual transactions and queries are not safe for concurrent use:
// build, sign, and execute each one from a single goroutine. The active node
// is client state, so concurrent executions on one Client contend on node
// switching; use independent Clients for parallel submission.
package sdk
