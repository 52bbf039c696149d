package notify

const newsletterTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin:0;padding:0;background-color:#f5f5f5;font-family:Georgia,'Times New Roman',serif;">
<table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f5f5f5;padding:20px 0;">
<tr><td align="center">
<table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:4px;overflow:hidden;box-shadow:0 1px 3px rgba(0,0,0,0.1);">
<tr><td style="background-color:#1a5276;padding:28px 32px;text-align:center;">
<h1 style="color:#ffffff;margin:0;font-size:24px;font-weight:normal;letter-spacing:0.5px;">{{.Name}}</h1>
<p style="color:#aed6f1;margin:8px 0 0 0;font-size:14px;">{{.Date}}</p>
</td></tr>
<tr><td style="padding:32px;color:#333333;font-size:15px;">{{.Body}}</td></tr>
<tr><td style="background-color:#f8f9fa;padding:20px 32px;text-align:center;border-top:1px solid #eee;">
<p style="color:#999999;font-size:12px;margin:0;">Generated by Claude &middot; Sent via Resend</p>
</td></tr>
</table>
</td></tr>
</table>
</body></html>`
